// Package readability extracts article bodies with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsscout"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsscout.Extractor at compile time.
var _ newsscout.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content, byline and
// publication time when readability finds them.
func (e *Extractor) Extract(rawHTML, pageURL string) (*newsscout.ExtractResult, error) {
	if rawHTML == "" {
		return nil, newsscout.Errorf(newsscout.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err == nil {
			u = parsed
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	result := &newsscout.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Authors:     splitByline(article.Byline),
	}
	if article.PublishedTime != nil {
		t := article.PublishedTime.UTC()
		result.PublishedAt = &t
	}
	return result, nil
}

// splitByline turns "By Jane Doe and John Roe" into individual names.
func splitByline(byline string) []string {
	byline = strings.TrimSpace(byline)
	if byline == "" {
		return nil
	}
	if len(byline) > 3 && strings.EqualFold(byline[:3], "by ") {
		byline = byline[3:]
	}
	byline = strings.ReplaceAll(byline, " and ", ",")
	byline = strings.ReplaceAll(byline, " & ", ",")

	var names []string
	for _, name := range strings.Split(byline, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
