package mock

import "github.com/fwojciec/newsscout"

var _ newsscout.SitemapParser = (*SitemapParser)(nil)

// SitemapParser is a mock implementation of newsscout.SitemapParser.
type SitemapParser struct {
	ParseSitemapFn func(body []byte) (*newsscout.Sitemap, error)
}

func (p *SitemapParser) ParseSitemap(body []byte) (*newsscout.Sitemap, error) {
	return p.ParseSitemapFn(body)
}
