// Package dateparse parses the loosely formatted timestamps found in feeds,
// JSON-LD, meta tags and JSON APIs.
package dateparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parse parses s as RFC 3339 first and falls back to format detection.
// Timestamps without a zone are interpreted as UTC. The result is always
// in UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParsePtr is like Parse but returns nil when s cannot be parsed.
func ParsePtr(s string) *time.Time {
	t, ok := Parse(s)
	if !ok {
		return nil
	}
	return &t
}
