// Package trafilatura extracts article bodies and metadata with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/newsscout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newsscout.Extractor at compile time.
var _ newsscout.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content together with the
// author and publication date trafilatura finds in the page metadata.
func (e *Extractor) Extract(rawHTML, pageURL string) (*newsscout.ExtractResult, error) {
	if rawHTML == "" {
		return nil, newsscout.Errorf(newsscout.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	out := &newsscout.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Authors:     splitAuthors(result.Metadata.Author),
	}
	if !result.Metadata.Date.IsZero() {
		t := result.Metadata.Date.UTC()
		out.PublishedAt = &t
	}
	return out, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// trafilatura joins multiple authors with "; ".
func splitAuthors(s string) []string {
	var authors []string
	for _, a := range strings.Split(s, ";") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}
