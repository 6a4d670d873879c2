package slog

import (
	"log/slog"
	"strings"

	"github.com/fwojciec/newsscout"
)

var _ newsscout.CMSDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a CMSDetector and logs the detected platforms.
type LoggingDetector struct {
	next   newsscout.CMSDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next newsscout.CMSDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

func (d *LoggingDetector) Detect(html, pageURL string) (found []newsscout.CMS) {
	defer func() {
		if len(found) == 0 {
			return
		}
		names := make([]string, len(found))
		for i, cms := range found {
			names[i] = string(cms)
		}
		d.logger.Info("cms detected", "url", pageURL, "cms", strings.Join(names, ","))
	}()
	return d.next.Detect(html, pageURL)
}
