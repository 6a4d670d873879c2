// Package rod implements newsscout.Renderer with a headless Chrome browser
// driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

const (
	// DefaultRenderTimeout is used when Render is called without a timeout.
	DefaultRenderTimeout = 15 * time.Second

	// stableInterval is how long the DOM must stay unchanged to count as
	// rendered.
	stableInterval = 300 * time.Millisecond

	// readGrace is extra time after the render deadline for reading the
	// document out of the page.
	readGrace = 2 * time.Second
)

// Ensure Renderer implements newsscout.Renderer at compile time.
var _ newsscout.Renderer = (*Renderer)(nil)

// Renderer loads pages in stealth-patched headless Chrome tabs.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	manager   *BrowserManager
	userAgent string
	closed    atomic.Bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// NewRenderer creates a Renderer on top of manager. The Renderer owns the
// manager and closes it on Close.
func NewRenderer(manager *BrowserManager, opts ...Option) *Renderer {
	r := &Renderer{manager: manager}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether the renderer can still render pages.
func (r *Renderer) Available() bool {
	return r.manager != nil && !r.closed.Load() && r.manager.Usable()
}

// Render navigates to url, waits for the load event and then for the DOM to
// settle, and returns the rendered HTML along with the document's HTTP
// status and final URL. Waiting for the DOM to settle is cut short at
// timeout; the HTML rendered so far is returned.
func (r *Renderer) Render(ctx context.Context, url string, timeout time.Duration) (*newsscout.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.Available() {
		return nil, newsscout.Errorf(newsscout.EUNAVAILABLE, "renderer is closed")
	}
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}

	browser := r.manager.Browser()
	if browser == nil {
		if err := r.manager.Err(); err != nil {
			return nil, newsscout.Errorf(newsscout.EUNAVAILABLE, "browser failed to start: %v", err)
		}
		return nil, newsscout.Errorf(newsscout.EUNAVAILABLE, "browser is not running")
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()
	defer r.manager.IncrementPageCount()

	pageCtx, cancel := context.WithTimeout(ctx, timeout+readGrace)
	defer cancel()
	page = page.Context(pageCtx)

	if r.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}

	renderCtx, cancelRender := context.WithTimeout(pageCtx, timeout)
	defer cancelRender()
	rendering := page.Context(renderCtx)

	status, contentType := 0, ""
	waitDocument := rendering.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		contentType = e.Response.MIMEType
		return true
	})

	if err := rendering.Navigate(url); err != nil {
		return nil, err
	}
	if err := rendering.WaitLoad(); err != nil {
		return nil, err
	}
	waitDocument()

	// Pages that never settle still return what they rendered.
	_ = rendering.WaitStable(stableInterval)

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}
	if status == 0 {
		status = 200
	}

	return &newsscout.Response{
		URL:         finalURL,
		StatusCode:  status,
		ContentType: contentType,
		Body:        html,
	}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	if r.manager == nil {
		return nil
	}
	return r.manager.Close()
}
