package scrape

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/newsscout"
)

// minRenderTimeout is the floor applied to headless render timeouts.
const minRenderTimeout = time.Second

// challengeMarkers appear on bot-challenge interstitials. Matched against
// the lower-cased body.
var challengeMarkers = []string{
	"just a moment",
	"attention required",
	"cf-browser-verification",
	"cf-chl",
	"checking your browser",
	"g-recaptcha",
	"h-captcha",
	"cf-turnstile",
	"enable javascript and cookies to continue",
	"ddos protection by",
}

// shellMarkers are static-bundle markers of client-rendered frameworks.
var shellMarkers = []string{
	"/_next/static/",
	"/_nuxt/",
	"data-reactroot",
	`id="root"></div>`,
	`id="app"></div>`,
	"ng-version",
	"__GATSBY",
}

// payloadMarkers indicate the page embeds its data even if it is rendered
// on the client.
var payloadMarkers = []string{
	"__NEXT_DATA__",
	"self.__next_f.push",
	"__NUXT__",
	"window.__INITIAL_STATE__",
	"__APOLLO_STATE__",
	"application/ld+json",
}

// IsChallengePage reports whether body looks like a bot-challenge page
// rather than the requested content.
func IsChallengePage(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsUnhydratedShell reports whether body is a client-rendered application
// shell that carries no embedded data payload.
func IsUnhydratedShell(body string) bool {
	shell := false
	for _, marker := range shellMarkers {
		if strings.Contains(body, marker) {
			shell = true
			break
		}
	}
	if !shell {
		return false
	}
	for _, marker := range payloadMarkers {
		if strings.Contains(body, marker) {
			return false
		}
	}
	return true
}

// blockedStatus reports whether status is worth retrying in a browser.
func blockedStatus(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// fetch retrieves rawURL within the run's budget. It returns false when the
// budget is exhausted, the deadline has passed or no usable document could
// be retrieved. Blocked statuses, challenge pages and unhydrated shells are
// retried through the renderer when one is available.
func (s *Scraper) fetch(ctx context.Context, budget *newsscout.Budget, rawURL string) (*newsscout.Response, bool) {
	timeout := budget.EffectiveTimeout(s.timeout())
	if !budget.Allow() || timeout == 0 {
		return nil, false
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			s.logger().Debug("rate limiter", "url", rawURL, "err", err)
			return nil, false
		}
	}

	budget.Consume()
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.Fetcher.Fetch(fctx, rawURL)
	if err != nil {
		s.logger().Debug("fetch failed", "url", rawURL, "err", err)
		return nil, false
	}

	switch {
	case blockedStatus(resp.StatusCode):
		return s.render(ctx, budget, rawURL)
	case !resp.OK():
		s.logger().Debug("unexpected status", "url", rawURL, "status", resp.StatusCode)
		return nil, false
	case IsChallengePage(resp.Body), IsUnhydratedShell(resp.Body):
		if rendered, ok := s.render(ctx, budget, rawURL); ok {
			return rendered, true
		}
	}
	return resp, true
}

// render retries rawURL through the headless renderer.
func (s *Scraper) render(ctx context.Context, budget *newsscout.Budget, rawURL string) (*newsscout.Response, bool) {
	if s.Renderer == nil || !s.Renderer.Available() {
		return nil, false
	}
	timeout := budget.EffectiveTimeout(s.timeout())
	if !budget.Allow() || timeout == 0 {
		return nil, false
	}
	budget.Consume()

	resp, err := s.Renderer.Render(ctx, rawURL, max(timeout, minRenderTimeout))
	if err != nil {
		s.logger().Debug("render failed", "url", rawURL, "err", err)
		return nil, false
	}
	if resp.StatusCode >= 400 {
		s.logger().Debug("render status", "url", rawURL, "status", resp.StatusCode)
		return nil, false
	}
	return resp, true
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
