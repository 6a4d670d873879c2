package mock

import "github.com/fwojciec/newsscout"

// Compile-time interface verification.
var (
	_ newsscout.LinkDiscoverer          = (*LinkDiscoverer)(nil)
	_ newsscout.ArticleExtractor        = (*ArticleExtractor)(nil)
	_ newsscout.StructuredDataExtractor = (*StructuredDataExtractor)(nil)
	_ newsscout.MetadataExtractor       = (*MetadataExtractor)(nil)
	_ newsscout.NextDataParser          = (*NextDataParser)(nil)
	_ newsscout.CMSDetector             = (*CMSDetector)(nil)
)

// LinkDiscoverer is a mock implementation of newsscout.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverLinksFn func(html, baseURL string) (*newsscout.PageLinks, error)
}

func (d *LinkDiscoverer) DiscoverLinks(html, baseURL string) (*newsscout.PageLinks, error) {
	return d.DiscoverLinksFn(html, baseURL)
}

// ArticleExtractor is a mock implementation of newsscout.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticlesFn func(html, baseURL string) ([]*newsscout.Candidate, error)
}

func (e *ArticleExtractor) ExtractArticles(html, baseURL string) ([]*newsscout.Candidate, error) {
	return e.ExtractArticlesFn(html, baseURL)
}

// StructuredDataExtractor is a mock implementation of newsscout.StructuredDataExtractor.
type StructuredDataExtractor struct {
	ExtractStructuredFn func(html, baseURL string) ([]*newsscout.Candidate, error)
}

func (e *StructuredDataExtractor) ExtractStructured(html, baseURL string) ([]*newsscout.Candidate, error) {
	return e.ExtractStructuredFn(html, baseURL)
}

// MetadataExtractor is a mock implementation of newsscout.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html, pageURL string) (*newsscout.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html, pageURL string) (*newsscout.PageMetadata, error) {
	return e.ExtractMetadataFn(html, pageURL)
}

// NextDataParser is a mock implementation of newsscout.NextDataParser.
type NextDataParser struct {
	ParseNextDataFn func(html, baseURL string) ([]*newsscout.Candidate, error)
}

func (p *NextDataParser) ParseNextData(html, baseURL string) ([]*newsscout.Candidate, error) {
	return p.ParseNextDataFn(html, baseURL)
}

// CMSDetector is a mock implementation of newsscout.CMSDetector.
type CMSDetector struct {
	DetectFn func(html, pageURL string) []newsscout.CMS
}

func (d *CMSDetector) Detect(html, pageURL string) []newsscout.CMS {
	return d.DetectFn(html, pageURL)
}
