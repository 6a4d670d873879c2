package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsscout"
)

// Ensure LinkDiscoverer implements newsscout.LinkDiscoverer at compile time.
var _ newsscout.LinkDiscoverer = (*LinkDiscoverer)(nil)

// feedHrefSuffixes identify anchors that point at feeds.
var feedHrefSuffixes = []string{"/feed", "/rss", ".rss", "feed.xml", "rss.xml", "atom.xml"}

// nextTexts are anchor texts used by "next page" links.
var nextTexts = []string{"next", "older", "load more", "more posts", "›", "»"}

// pagerSelectors match pagination containers.
var pagerSelectors = []string{"[class*='pagination'] a[href]", "[class*='pager'] a[href]", ".nav-links a[href]", "a[class*='next'][href]"}

// categoryPathMarkers identify category, tag and topic listings.
var categoryPathMarkers = []string{"/category/", "/categories/", "/tag/", "/tags/", "/topics/"}

// LinkDiscoverer finds feed, pagination and category links on listing pages.
type LinkDiscoverer struct{}

// NewLinkDiscoverer creates a new LinkDiscoverer.
func NewLinkDiscoverer() *LinkDiscoverer {
	return &LinkDiscoverer{}
}

// DiscoverLinks returns the feed, next-page and category links of a page.
// Each list is deduplicated by normalized URL and excludes the page itself.
func (d *LinkDiscoverer) DiscoverLinks(html, baseURL string) (*newsscout.PageLinks, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "failed to parse HTML: %v", err)
	}

	links := &newsscout.PageLinks{}
	self := newsscout.NormalizeURL(baseURL)

	feeds := newLinkSet(self)
	doc.Find("link[rel~='alternate'][href]").Each(func(_ int, s *goquery.Selection) {
		typ := strings.ToLower(s.AttrOr("type", ""))
		if strings.Contains(typ, "rss") || strings.Contains(typ, "atom") ||
			strings.Contains(typ, "xml") || strings.Contains(typ, "json") {
			feeds.add(newsscout.ResolveURL(baseURL, s.AttrOr("href", "")))
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		resolved := newsscout.ResolveURL(baseURL, s.AttrOr("href", ""))
		if resolved == "" {
			return
		}
		path := strings.ToLower(urlPath(resolved))
		for _, suffix := range feedHrefSuffixes {
			if strings.HasSuffix(strings.TrimSuffix(path, "/"), suffix) {
				feeds.add(resolved)
				return
			}
		}
	})
	links.Feeds = feeds.urls

	next := newLinkSet(self)
	doc.Find("link[rel~='next'][href], a[rel~='next'][href]").Each(func(_ int, s *goquery.Selection) {
		next.addSameSite(baseURL, s.AttrOr("href", ""))
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if isNextText(s.Text()) {
			next.addSameSite(baseURL, s.AttrOr("href", ""))
		}
	})
	for _, selector := range pagerSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			next.addSameSite(baseURL, s.AttrOr("href", ""))
		})
	}
	links.Next = next.urls

	categories := newLinkSet(self)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		resolved := newsscout.ResolveURL(baseURL, s.AttrOr("href", ""))
		if resolved == "" || !newsscout.SameSite(baseURL, resolved) {
			return
		}
		if IsCategoryURL(resolved) {
			categories.add(resolved)
		}
	})
	links.Categories = categories.urls

	return links, nil
}

// isNextText reports whether anchor text reads like a "next page" control.
// Word markers must stand alone so "Next.js 14" is not a pager link.
func isNextText(text string) bool {
	text = strings.ToLower(strings.Join(strings.Fields(text), " "))
	if text == "" || len(text) > 30 {
		return false
	}
	for _, marker := range nextTexts {
		if marker == "›" || marker == "»" {
			if strings.Contains(text, marker) {
				return true
			}
			continue
		}
		if text == marker || strings.HasPrefix(text, marker+" ") || strings.HasSuffix(text, " "+marker) {
			return true
		}
	}
	return false
}

// IsCategoryURL reports whether rawURL looks like a category, tag or topic
// listing.
func IsCategoryURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, marker := range categoryPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return u.Query().Get("category") != ""
}

// linkSet accumulates resolved URLs in document order, deduplicated by
// normalized form.
type linkSet struct {
	self string
	seen map[string]bool
	urls []string
}

func newLinkSet(self string) *linkSet {
	return &linkSet{self: self, seen: make(map[string]bool)}
}

func (s *linkSet) add(resolved string) {
	if resolved == "" {
		return
	}
	key := newsscout.NormalizeURL(resolved)
	if key == s.self || s.seen[key] {
		return
	}
	s.seen[key] = true
	s.urls = append(s.urls, resolved)
}

func (s *linkSet) addSameSite(baseURL, href string) {
	resolved := newsscout.ResolveURL(baseURL, href)
	if resolved != "" && newsscout.SameSite(baseURL, resolved) {
		s.add(resolved)
	}
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}
