// Package scrape discovers, enriches and classifies the news articles of
// company websites. A Scraper combines feed discovery, structured data,
// CMS adapters, listing-page heuristics and news sitemaps under a per-run
// request and time budget.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/bloom"
)

// DefaultTimeout is the per-request timeout used when Scraper.Timeout is
// unset.
const DefaultTimeout = 15 * time.Second

// targetFactor sizes the candidate pool relative to the requested number
// of articles.
const targetFactor = 3

// bootstrapPaths are the listing locations guessed when no news page is
// given.
var bootstrapPaths = []string{
	"/blog",
	"/blogs",
	"/news",
	"/newsroom",
	"/press",
	"/press-releases",
	"/insights",
	"/updates",
	"/stories",
	"/company/blog",
	"/company/news",
	"/about/news",
	"/resources/blog",
	"/en/blog",
	"/en/news",
}

// Scraper discovers news articles on company websites. Only Fetcher is
// required; every other collaborator is optional and the strategies that
// need it are skipped when it is nil.
type Scraper struct {
	Fetcher     newsscout.Fetcher
	Renderer    newsscout.Renderer
	FeedParser  newsscout.FeedParser
	Links       newsscout.LinkDiscoverer
	Articles    newsscout.ArticleExtractor
	Structured  newsscout.StructuredDataExtractor
	Metadata    newsscout.MetadataExtractor
	Detector    newsscout.CMSDetector
	NextData    newsscout.NextDataParser
	Sitemaps    newsscout.SitemapParser
	Extractor   newsscout.Extractor
	Converter   newsscout.Converter
	RateLimiter newsscout.DomainLimiter
	Logger      *slog.Logger

	// Timeout bounds every single request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxRequests is the request budget of one run. Defaults to
	// newsscout.DefaultRequestBudget.
	MaxRequests int

	// Now is the clock used for deadlines and synthetic publish times.
	Now func() time.Time

	closed bool
}

// ScrapeRequest describes one company scrape.
type ScrapeRequest struct {
	CompanyName string
	Website     string

	// NewsPageURL, if set, is the only listing page tried.
	NewsPageURL string

	MaxArticles int

	// MaxDuration bounds the run's wall-clock time. Zero means no limit.
	MaxDuration time.Duration
}

// Preview is the outcome of a scan: the items and how they were found.
type Preview struct {
	Items     []*newsscout.NewsItem `json:"items"`
	Metrics   map[string]int        `json:"metrics"`
	Requests  int                   `json:"requests"`
	Bootstrap []string              `json:"bootstrap"`
	Duration  time.Duration         `json:"duration"`
}

// run holds the state of a single scrape.
type run struct {
	s        *Scraper
	log      *slog.Logger
	budget   *newsscout.Budget
	pool     *newsscout.CandidatePool
	metrics  map[string]int
	target   int
	feeds    map[string]bool
	pages    map[string]bool
	visited  *bloom.Filter
	branches int
}

// ScrapeCompany returns up to req.MaxArticles classified news items for a
// company. It never fails: sources that cannot be reached yield nothing.
func (s *Scraper) ScrapeCompany(ctx context.Context, req ScrapeRequest) []*newsscout.NewsItem {
	return s.Scan(ctx, req).Items
}

// Scan runs a scrape and reports the items together with per-strategy
// candidate counts, the requests used and the listing pages tried.
func (s *Scraper) Scan(ctx context.Context, req ScrapeRequest) (p *Preview) {
	begin := s.now()
	p = &Preview{Metrics: make(map[string]int)}
	defer func() {
		if rec := recover(); rec != nil {
			s.logger().Error("scrape panicked", "company", req.CompanyName, "panic", rec)
			p.Items = nil
		}
		p.Duration = s.now().Sub(begin)
	}()

	if req.MaxArticles <= 0 {
		return p
	}

	budget := newsscout.NewBudget(s.maxRequests(), newsscout.WithClock(s.now))
	budget.SetDeadline(req.MaxDuration)
	r := &run{
		s:       s,
		log:     s.logger().With("company", req.CompanyName),
		budget:  budget,
		pool:    newsscout.NewCandidatePool(),
		metrics: p.Metrics,
		target:  targetFactor * req.MaxArticles,
		feeds:   make(map[string]bool),
		pages:   make(map[string]bool),
		visited: bloom.NewFilter(uint(max(s.maxRequests(), 100)), 0.001),
	}
	defer func() { p.Requests = budget.Used() }()

	p.Bootstrap = bootstrapURLs(req)
	fetched := false
	for _, u := range p.Bootstrap {
		if r.pool.Len() >= r.target || !budget.Allow() {
			break
		}
		resp, ok := s.fetch(ctx, budget, u)
		if !ok {
			continue
		}
		fetched = true
		r.discover(ctx, &newsscout.Page{URL: resp.URL, HTML: resp.Body})
	}

	if fetched && r.pool.Len() < r.target && budget.Allow() {
		r.collect(r.discoverSitemaps(ctx, siteURL(req.Website)))
	}

	if r.pool.Len() == 0 {
		r.log.Warn("no articles found", "website", req.Website, "requests", budget.Used())
		return p
	}

	enriched := newsscout.NewCandidatePool()
	for _, c := range r.pool.Candidates() {
		if enriched.Len() >= req.MaxArticles {
			break
		}
		enriched.Add(r.enrich(ctx, c))
	}

	p.Items = s.items(req, enriched.Candidates())
	r.log.Info("scrape finished",
		"website", req.Website,
		"items", len(p.Items),
		"candidates", r.pool.Len(),
		"requests", budget.Used(),
	)
	return p
}

// discover runs every strategy against a listing page in order, stopping
// once enough candidates have been collected.
func (r *run) discover(ctx context.Context, page *newsscout.Page) {
	key := newsscout.NormalizeURL(page.URL)
	if r.pages[key] {
		return
	}
	r.pages[key] = true

	strategies := []func(context.Context, *newsscout.Page) *newsscout.Discovery{
		r.discoverFeeds,
		r.discoverStructured,
		r.discoverCMS,
		r.crawlListings,
	}
	for _, strategy := range strategies {
		if r.pool.Len() >= r.target {
			return
		}
		r.collect(strategy(ctx, page))
	}
}

// discoverStructured reads the JSON-LD articles embedded in page.
func (r *run) discoverStructured(_ context.Context, page *newsscout.Page) *newsscout.Discovery {
	d := &newsscout.Discovery{}
	if r.s.Structured == nil {
		return d
	}
	candidates, err := r.s.Structured.ExtractStructured(page.HTML, page.URL)
	if err != nil {
		r.log.Debug("extract structured data", "url", page.URL, "err", err)
		return d
	}
	d.Add(candidates...)
	return d
}

func (r *run) collect(d *newsscout.Discovery) {
	for _, c := range d.Candidates {
		r.pool.Add(c)
	}
	for k, v := range d.Metrics {
		r.metrics[k] += v
	}
}

// full reports whether the pool together with d reaches the target size.
func (r *run) full(d *newsscout.Discovery) bool {
	return r.pool.Len()+d.Len() >= r.target
}

// items classifies the first MaxArticles candidates. Undated candidates get
// a synthetic time of now minus their index in minutes so the output keeps
// a total order.
func (s *Scraper) items(req ScrapeRequest, candidates []*newsscout.Candidate) []*newsscout.NewsItem {
	now := s.now().UTC()
	n := min(len(candidates), req.MaxArticles)
	items := make([]*newsscout.NewsItem, 0, n)
	for i, c := range candidates[:n] {
		published := now.Add(-time.Duration(i) * time.Minute)
		if c.PublishedAt != nil {
			published = c.PublishedAt.UTC()
		}
		c.SourceType = newsscout.SourceTypeFor(c.URL)
		items = append(items, &newsscout.NewsItem{
			Title:       c.Title,
			Content:     c.Content,
			Summary:     c.BestSummary(),
			SourceURL:   c.URL,
			SourceType:  c.SourceType,
			CompanyName: req.CompanyName,
			Category:    newsscout.Categorize(c),
			PublishedAt: published,
			Authors:     nilIfEmpty(c.Authors),
			Tags:        nilIfEmpty(c.Tags),
			Strategy:    c.Strategy,
		})
	}
	return items
}

// ScrapeCompanies scrapes each company in turn and concatenates the results.
// Companies without a name or website are skipped.
func (s *Scraper) ScrapeCompanies(ctx context.Context, companies []newsscout.Company, maxPerCompany int) []*newsscout.NewsItem {
	var out []*newsscout.NewsItem
	for _, company := range companies {
		if ctx.Err() != nil {
			break
		}
		if company.Name == "" || company.Website == "" {
			continue
		}
		out = append(out, s.ScrapeCompany(ctx, ScrapeRequest{
			CompanyName: company.Name,
			Website:     company.Website,
			NewsPageURL: company.NewsPageURL,
			MaxArticles: maxPerCompany,
		})...)
	}
	return out
}

// Close releases the fetcher and the renderer. It is safe to call more than
// once and with either collaborator unset.
func (s *Scraper) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.Fetcher != nil {
		if err := s.Fetcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing fetcher: %w", err))
		}
	}
	if s.Renderer != nil {
		if err := s.Renderer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing renderer: %w", err))
		}
	}
	return errors.Join(errs...)
}

// bootstrapURLs returns the listing pages to try, in order, without
// duplicates.
func bootstrapURLs(req ScrapeRequest) []string {
	if req.NewsPageURL != "" {
		return []string{newsscout.NormalizeURL(siteURL(req.NewsPageURL))}
	}
	root := newsscout.SiteRoot(siteURL(req.Website))
	if root == "" {
		return nil
	}
	seen := make(map[string]bool)
	var urls []string
	for _, p := range bootstrapPaths {
		u := newsscout.NormalizeURL(root + p)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

// siteURL adds an https scheme to bare host names.
func siteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return raw
	}
	return "https://" + strings.TrimPrefix(raw, "//")
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func (s *Scraper) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Scraper) maxRequests() int {
	if s.MaxRequests > 0 {
		return s.MaxRequests
	}
	return newsscout.DefaultRequestBudget
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
