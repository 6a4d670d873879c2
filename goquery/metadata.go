package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// Ensure MetadataExtractor implements newsscout.MetadataExtractor at compile time.
var _ newsscout.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor reads OpenGraph, article and JSON-LD metadata from
// article pages.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the page's metadata. URLs are resolved against
// pageURL.
func (e *MetadataExtractor) ExtractMetadata(html, pageURL string) (*newsscout.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := &newsscout.PageMetadata{
		Canonical:     newsscout.ResolveURL(pageURL, doc.Find("link[rel='canonical']").First().AttrOr("href", "")),
		OGURL:         newsscout.ResolveURL(pageURL, property(doc, "og:url")),
		OGTitle:       cleanText(property(doc, "og:title")),
		OGDescription: cleanText(property(doc, "og:description")),
	}

	doc.Find("meta[name='author']").Each(func(_ int, s *goquery.Selection) {
		if name := cleanText(s.AttrOr("content", "")); name != "" {
			meta.Authors = append(meta.Authors, name)
		}
	})

	if ts := property(doc, "article:published_time"); ts != "" {
		meta.PublishedAt = dateparse.ParsePtr(ts)
	}
	if meta.PublishedAt == nil {
		if ts := doc.Find("article time[datetime]").First().AttrOr("datetime", ""); ts != "" {
			meta.PublishedAt = dateparse.ParsePtr(ts)
		}
	}

	meta.Tags = properties(doc, "article:tag")
	meta.Sections = properties(doc, "article:section")
	meta.Articles = jsonLDArticles(doc, pageURL)

	return meta, nil
}

// property returns the content of the first meta tag with the given
// property (or name, which some sites use for OpenGraph tags).
func property(doc *goquery.Document, prop string) string {
	sel := doc.Find("meta[property='" + prop + "'], meta[name='" + prop + "']").First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

func properties(doc *goquery.Document, prop string) []string {
	var out []string
	doc.Find("meta[property='" + prop + "'], meta[name='" + prop + "']").Each(func(_ int, s *goquery.Selection) {
		if v := cleanText(s.AttrOr("content", "")); v != "" {
			out = append(out, v)
		}
	})
	return out
}
