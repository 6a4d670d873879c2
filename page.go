package newsscout

import "time"

// Page is a fetched listing page.
type Page struct {
	URL  string
	HTML string
}

// PageLinks are the navigation links found on a listing page.
type PageLinks struct {
	// Feeds are RSS, Atom and JSON feed URLs advertised by the page.
	Feeds []string

	// Next are pagination links, in document order.
	Next []string

	// Categories are category, tag and topic listing links.
	Categories []string
}

// PageMetadata is the article-level metadata found on an article page.
type PageMetadata struct {
	Canonical     string
	OGURL         string
	OGTitle       string
	OGDescription string
	Authors       []string
	PublishedAt   *time.Time
	Tags          []string
	Sections      []string

	// Articles are the JSON-LD article nodes of the page.
	Articles []*Candidate
}

// LinkDiscoverer finds feed, pagination and category links in HTML.
type LinkDiscoverer interface {
	DiscoverLinks(html, baseURL string) (*PageLinks, error)
}

// ArticleExtractor finds article links on a listing page using generic
// HTML heuristics.
type ArticleExtractor interface {
	ExtractArticles(html, baseURL string) ([]*Candidate, error)
}

// StructuredDataExtractor reads article candidates from JSON-LD blocks.
type StructuredDataExtractor interface {
	ExtractStructured(html, baseURL string) ([]*Candidate, error)
}

// MetadataExtractor reads article metadata from an article page.
type MetadataExtractor interface {
	ExtractMetadata(html, pageURL string) (*PageMetadata, error)
}

// NextDataParser reads article candidates from Next.js page payloads.
type NextDataParser interface {
	ParseNextData(html, baseURL string) ([]*Candidate, error)
}

// CMS identifies a content management system.
type CMS string

// Known content management systems.
const (
	CMSUnknown   CMS = ""
	CMSGhost     CMS = "ghost"
	CMSMedium    CMS = "medium"
	CMSHubSpot   CMS = "hubspot"
	CMSWebflow   CMS = "webflow"
	CMSNextJS    CMS = "nextjs"
	CMSWordPress CMS = "wordpress"
)

// CMSDetector identifies the CMSs whose signals appear on a page, in the
// order their adapters should run.
type CMSDetector interface {
	Detect(html, pageURL string) []CMS
}
