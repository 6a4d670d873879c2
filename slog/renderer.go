package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsscout"
)

var _ newsscout.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging of headless page loads.
type LoggingRenderer struct {
	next   newsscout.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next newsscout.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

func (r *LoggingRenderer) Available() bool {
	return r.next.Available()
}

// Render delegates to the wrapped renderer and logs the outcome.
func (r *LoggingRenderer) Render(ctx context.Context, url string, timeout time.Duration) (resp *newsscout.Response, err error) {
	defer func(begin time.Time) {
		var size int
		if resp != nil {
			size = len(resp.Body)
		}
		r.logger.Info("render",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url, timeout)
}

func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
