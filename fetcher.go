package newsscout

import (
	"context"
	"time"
)

// Response is a fetched document.
type Response struct {
	// URL is the final URL after redirects.
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves documents over plain HTTP.
type Fetcher interface {
	// Fetch performs a GET request and returns the response for any HTTP
	// status. The error is non-nil only for transport failures.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases idle connections.
	Close() error
}

// Renderer loads pages in a headless browser so client-rendered content and
// bot challenges resolve before the HTML is read.
type Renderer interface {
	// Available reports whether headless rendering can be used.
	Available() bool

	// Render navigates to url, waits for the DOM to settle within timeout,
	// and returns the rendered HTML.
	Render(ctx context.Context, url string, timeout time.Duration) (*Response, error)

	// Close releases browser resources.
	Close() error
}

// NopRenderer is a Renderer that is never available.
type NopRenderer struct{}

var _ Renderer = NopRenderer{}

func (NopRenderer) Available() bool { return false }

func (NopRenderer) Render(context.Context, string, time.Duration) (*Response, error) {
	return nil, Errorf(EUNAVAILABLE, "headless rendering is not available")
}

func (NopRenderer) Close() error { return nil }

// DomainLimiter paces requests per host.
// Implementations must be safe for concurrent use.
type DomainLimiter interface {
	Wait(ctx context.Context, domain string) error
}
