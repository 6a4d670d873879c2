package newsscout

import "time"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	Authors     []string
	PublishedAt *time.Time
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content. pageURL is
	// used to resolve relative links and may be empty.
	Extract(html, pageURL string) (*ExtractResult, error)
}
