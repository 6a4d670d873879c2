package mock

import (
	"context"
	"time"

	"github.com/fwojciec/newsscout"
)

var (
	_ newsscout.Fetcher       = (*Fetcher)(nil)
	_ newsscout.Renderer      = (*Renderer)(nil)
	_ newsscout.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of newsscout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*newsscout.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*newsscout.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Renderer is a mock implementation of newsscout.Renderer.
type Renderer struct {
	AvailableFn func() bool
	RenderFn    func(ctx context.Context, url string, timeout time.Duration) (*newsscout.Response, error)
	CloseFn     func() error
}

func (r *Renderer) Available() bool {
	return r.AvailableFn()
}

func (r *Renderer) Render(ctx context.Context, url string, timeout time.Duration) (*newsscout.Response, error) {
	return r.RenderFn(ctx, url, timeout)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

// DomainLimiter is a mock implementation of newsscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
