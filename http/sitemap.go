package http

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// Ensure SitemapParser implements newsscout.SitemapParser.
var _ newsscout.SitemapParser = (*SitemapParser)(nil)

// SitemapParser parses sitemaps, sitemap indexes and Google News sitemaps.
// Fetching is left to the caller so every request is charged to its budget.
type SitemapParser struct{}

// NewSitemapParser creates a new SitemapParser.
func NewSitemapParser() *SitemapParser {
	return &SitemapParser{}
}

// ParseSitemap parses a <urlset> or <sitemapindex> document.
func (p *SitemapParser) ParseSitemap(body []byte) (*newsscout.Sitemap, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	sitemap := &newsscout.Sitemap{}

	// Check if this is a sitemap index
	if root.Tag == "sitemapindex" {
		for _, el := range children(root, "sitemap") {
			if loc := text(child(el, "loc")); loc != "" {
				sitemap.Sitemaps = append(sitemap.Sitemaps, loc)
			}
		}
		return sitemap, nil
	}

	if root.Tag != "urlset" {
		return nil, fmt.Errorf("unexpected sitemap root element %q", root.Tag)
	}

	for _, el := range children(root, "url") {
		loc := text(child(el, "loc"))
		if loc == "" {
			continue
		}
		entry := newsscout.SitemapEntry{
			Loc:     loc,
			LastMod: dateparse.ParsePtr(text(child(el, "lastmod"))),
		}
		if news := child(el, "news"); news != nil {
			entry.NewsTitle = text(child(news, "title"))
			entry.NewsPublished = dateparse.ParsePtr(text(child(news, "publication_date")))
			for _, kw := range strings.Split(text(child(news, "keywords")), ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					entry.Keywords = append(entry.Keywords, kw)
				}
			}
		}
		sitemap.Entries = append(sitemap.Entries, entry)
	}

	return sitemap, nil
}

// child returns the first child element with the given local name,
// whatever namespace prefix the document uses for it.
func child(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func children(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
