package scrape

import (
	"context"
	"slices"
	"strings"

	"github.com/fwojciec/newsscout"
	"github.com/temoto/robotstxt"
)

// maxChildSitemaps bounds how many sitemaps of an index are followed.
const maxChildSitemaps = 3

// defaultSitemapPaths are tried when robots.txt names no sitemap.
var defaultSitemapPaths = []string{
	"/sitemap_news.xml",
	"/news-sitemap.xml",
	"/sitemap.xml",
}

// discoverSitemaps reads the Google News entries of the site's sitemaps.
func (r *run) discoverSitemaps(ctx context.Context, siteURL string) *newsscout.Discovery {
	d := &newsscout.Discovery{}
	start := r.budget.Used()
	defer func() { d.Requests = r.budget.Used() - start }()

	if r.s.Sitemaps == nil {
		return d
	}
	root := newsscout.SiteRoot(siteURL)
	if root == "" {
		return d
	}

	sitemapURLs := r.robotsSitemaps(ctx, root)
	if len(sitemapURLs) == 0 {
		for _, p := range defaultSitemapPaths {
			sitemapURLs = append(sitemapURLs, root+p)
		}
	}

	for _, u := range sitemapURLs {
		if !r.budget.Allow() || r.full(d) {
			break
		}
		sm := r.fetchSitemap(ctx, u)
		if sm == nil {
			continue
		}
		d.Add(sitemapCandidates(sm)...)

		for _, child := range childSitemaps(sm.Sitemaps) {
			if !r.budget.Allow() || r.full(d) {
				break
			}
			if csm := r.fetchSitemap(ctx, child); csm != nil {
				d.Add(sitemapCandidates(csm)...)
			}
		}
		if d.Len() > 0 {
			break
		}
	}
	return d
}

// robotsSitemaps returns the Sitemap directives of the site's robots.txt.
func (r *run) robotsSitemaps(ctx context.Context, root string) []string {
	resp, ok := r.s.fetch(ctx, r.budget, root+"/robots.txt")
	if !ok {
		return nil
	}
	robots, err := robotstxt.FromBytes([]byte(resp.Body))
	if err != nil {
		r.log.Debug("parse robots.txt", "url", root, "err", err)
		return nil
	}
	return robots.Sitemaps
}

func (r *run) fetchSitemap(ctx context.Context, sitemapURL string) *newsscout.Sitemap {
	resp, ok := r.s.fetch(ctx, r.budget, sitemapURL)
	if !ok {
		return nil
	}
	sm, err := r.s.Sitemaps.ParseSitemap([]byte(resp.Body))
	if err != nil {
		r.log.Debug("parse sitemap", "url", sitemapURL, "err", err)
		return nil
	}
	return sm
}

// childSitemaps orders an index's sitemaps news-named first and caps them.
func childSitemaps(urls []string) []string {
	ordered := slices.Clone(urls)
	slices.SortStableFunc(ordered, func(a, b string) int {
		return newsRank(a) - newsRank(b)
	})
	if len(ordered) > maxChildSitemaps {
		ordered = ordered[:maxChildSitemaps]
	}
	return ordered
}

func newsRank(u string) int {
	if strings.Contains(strings.ToLower(u), "news") {
		return 0
	}
	return 1
}

// sitemapCandidates converts Google News entries into candidates. Plain
// entries carry no title and are skipped.
func sitemapCandidates(sm *newsscout.Sitemap) []*newsscout.Candidate {
	var out []*newsscout.Candidate
	for _, e := range sm.Entries {
		if e.NewsTitle == "" || e.Loc == "" {
			continue
		}
		c := newsscout.NewCandidate(e.Loc, e.NewsTitle, newsscout.StrategySitemap)
		c.PublishedAt = e.NewsPublished
		if c.PublishedAt == nil {
			c.PublishedAt = e.LastMod
		}
		c.AddTags(e.Keywords...)
		out = append(out, c)
	}
	return out
}
