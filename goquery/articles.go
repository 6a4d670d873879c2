package goquery

import (
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// Ensure ArticleExtractor implements newsscout.ArticleExtractor at compile time.
var _ newsscout.ArticleExtractor = (*ArticleExtractor)(nil)

// SelectorConfig defines a CSS selector for article links and a label
// recorded on the candidates it produces.
type SelectorConfig struct {
	Selector string
	Source   string
}

// ArticleSelectors are tried in order; the first selector to yield a URL
// decides its title.
var ArticleSelectors = []SelectorConfig{
	{Selector: "article a[href]", Source: "article"},
	{Selector: "h1 a[href]", Source: "heading"},
	{Selector: "h2 a[href]", Source: "heading"},
	{Selector: "h3 a[href]", Source: "heading"},
	{Selector: "a[href]:has(h2)", Source: "card"},
	{Selector: "a[href]:has(h3)", Source: "card"},
	{Selector: "[class*='post'] a[href]", Source: "post"},
	{Selector: "[class*='article'] a[href]", Source: "post"},
	{Selector: "[class*='card'] a[href]", Source: "card"},
	{Selector: "a[href*='/blog/']", Source: "path"},
	{Selector: "a[href*='/news/']", Source: "path"},
	{Selector: "a[href*='/press']", Source: "path"},
	{Selector: "a[href*='/story']", Source: "path"},
	{Selector: "a[href*='/stories/']", Source: "path"},
	{Selector: "a[href*='/insight']", Source: "path"},
}

// fallbackPathMarkers are path fragments that mark article URLs when no
// selector matched anything.
var fallbackPathMarkers = []string{"/blog/", "/news/", "/press-release", "/posts/", "/article", "/stories/"}

var assetExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".svg": true, ".webp": true,
	".mp4": true, ".mov": true, ".webm": true, ".mp3": true, ".pdf": true, ".zip": true,
}

// listingSegments are final path segments of listing pages rather than
// articles.
var listingSegments = map[string]bool{
	"blog":           true,
	"blogs":          true,
	"news":           true,
	"newsroom":       true,
	"press":          true,
	"press-releases": true,
	"insights":       true,
	"updates":        true,
	"stories":        true,
	"posts":          true,
	"articles":       true,
	"archive":        true,
	"all":            true,
}

// ArticleExtractor finds article links on listing pages.
type ArticleExtractor struct {
	Selectors []SelectorConfig
}

// NewArticleExtractor creates an ArticleExtractor using ArticleSelectors.
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{Selectors: ArticleSelectors}
}

// ExtractArticles returns one candidate per article URL in document order.
// When no selector yields a candidate it falls back to scanning every
// anchor for article-like paths.
func (e *ArticleExtractor) ExtractArticles(html, baseURL string) ([]*newsscout.Candidate, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "failed to parse HTML: %v", err)
	}

	self := newsscout.NormalizeURL(baseURL)
	seen := make(map[string]bool)
	var candidates []*newsscout.Candidate

	for _, config := range e.Selectors {
		doc.Find(config.Selector).Each(func(_ int, sel *goquery.Selection) {
			resolved := articleURL(sel, baseURL, self)
			if resolved == "" {
				return
			}
			key := newsscout.NormalizeURL(resolved)
			if seen[key] {
				return
			}
			c := newCandidateFromAnchor(sel, resolved, newsscout.StrategyHTML)
			if c == nil {
				return
			}
			c.SetExtra("selector", config.Source)
			seen[key] = true
			candidates = append(candidates, c)
		})
	}

	if len(candidates) > 0 {
		return candidates, nil
	}

	// Fallback: any anchor whose path looks like an article, for sites with
	// utility-class markup that none of the selectors match.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		resolved := articleURL(sel, baseURL, self)
		if resolved == "" || !hasArticlePath(resolved) {
			return
		}
		key := newsscout.NormalizeURL(resolved)
		if seen[key] {
			return
		}
		c := newCandidateFromAnchor(sel, resolved, newsscout.StrategyHTMLFallback)
		if c == nil {
			return
		}
		seen[key] = true
		candidates = append(candidates, c)
	})

	return candidates, nil
}

// articleURL resolves the anchor's href and returns it if it can point at an
// article on the same site.
func articleURL(sel *goquery.Selection, baseURL, self string) string {
	resolved := newsscout.ResolveURL(baseURL, sel.AttrOr("href", ""))
	if resolved == "" {
		return ""
	}
	if !newsscout.SameSite(baseURL, resolved) {
		return ""
	}
	if newsscout.NormalizeURL(resolved) == self {
		return ""
	}
	u, err := url.Parse(resolved)
	if err != nil {
		return ""
	}
	if assetExtensions[strings.ToLower(path.Ext(u.Path))] {
		return ""
	}
	if IsListingURL(resolved) {
		return ""
	}
	return resolved
}

// IsListingURL reports whether rawURL looks like a listing, pagination or
// category page rather than an article.
func IsListingURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	p := strings.Trim(strings.ToLower(u.Path), "/")
	if p == "" {
		return true
	}
	segments := strings.Split(p, "/")
	last := segments[len(segments)-1]
	if listingSegments[last] {
		return true
	}
	if len(segments) >= 2 && segments[len(segments)-2] == "page" {
		return true
	}
	if u.Query().Get("page") != "" {
		return true
	}
	return IsCategoryURL(rawURL)
}

// hasArticlePath reports whether the URL path contains an article marker
// followed by a non-empty slug.
func hasArticlePath(rawURL string) bool {
	p := strings.ToLower(urlPath(rawURL))
	for _, marker := range fallbackPathMarkers {
		idx := strings.Index(p, marker)
		if idx < 0 {
			continue
		}
		rest := p[idx+len(marker):]
		if !strings.HasSuffix(marker, "/") {
			// "/article" and "/press-release" may continue the segment.
			if i := strings.Index(rest, "/"); i >= 0 {
				rest = rest[i+1:]
			} else {
				rest = ""
			}
		}
		if strings.Trim(rest, "/") != "" {
			return true
		}
	}
	return false
}

// newCandidateFromAnchor builds a candidate from an anchor and the card that
// contains it. Returns nil when no acceptable title can be found.
func newCandidateFromAnchor(sel *goquery.Selection, resolved, strategy string) *newsscout.Candidate {
	title := anchorTitle(sel)
	if title == "" {
		return nil
	}

	c := newsscout.NewCandidate(resolved, title, strategy)
	card := cardOf(sel)

	if p := cleanText(card.Find("p").First().Text()); p != "" && p != c.Title {
		c.Summary = p
	}

	if t := card.Find("time").First(); t.Length() > 0 {
		raw := t.AttrOr("datetime", "")
		if raw == "" {
			raw = t.Text()
		}
		c.PublishedAt = dateparse.ParsePtr(raw)
	}

	return c
}

// anchorTitle picks the best title for an anchor: a heading inside it, its
// own text, its title or aria-label, a heading in its parent, then the
// parent's text when short enough.
func anchorTitle(sel *goquery.Selection) string {
	if h := cleanText(sel.Find("h1, h2, h3, h4").First().Text()); newsscout.ValidTitle(h) {
		return h
	}
	if text := cleanText(sel.Text()); newsscout.ValidTitle(text) {
		return text
	}
	for _, attr := range []string{"title", "aria-label"} {
		if v := cleanText(sel.AttrOr(attr, "")); newsscout.ValidTitle(v) {
			return v
		}
	}
	parent := sel.Parent()
	if h := cleanText(parent.Find("h1, h2, h3, h4").First().Text()); newsscout.ValidTitle(h) {
		return h
	}
	if text := cleanText(parent.Text()); newsscout.ValidTitle(text) && utf8.RuneCountInString(text) <= newsscout.MaxTitleLength {
		return text
	}
	return ""
}

// cardOf returns the closest element that groups an article teaser.
func cardOf(sel *goquery.Selection) *goquery.Selection {
	if card := sel.Closest("article, li, [class*='card'], [class*='post'], [class*='teaser']"); card.Length() > 0 {
		return card
	}
	return sel.Parent()
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
