package newsscout

import "time"

// Sitemap is a parsed sitemap or sitemap index.
type Sitemap struct {
	// Sitemaps are child sitemap locations from a sitemap index.
	Sitemaps []string
	Entries  []SitemapEntry
}

// SitemapEntry is a single <url> element. The News fields are set only for
// Google News sitemaps.
type SitemapEntry struct {
	Loc           string
	LastMod       *time.Time
	NewsTitle     string
	NewsPublished *time.Time
	Keywords      []string
}

// SitemapParser parses sitemap XML.
type SitemapParser interface {
	ParseSitemap(body []byte) (*Sitemap, error)
}
