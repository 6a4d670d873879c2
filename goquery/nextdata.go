package goquery

import (
	"encoding/json"
	"maps"
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// Ensure NextDataParser implements newsscout.NextDataParser at compile time.
var _ newsscout.NextDataParser = (*NextDataParser)(nil)

var (
	titleKeys   = []string{"title", "headline", "name"}
	hrefKeys    = []string{"href", "url", "link", "path", "slug"}
	dateKeys    = []string{"date", "publishedAt", "published_at", "datePublished", "publishDate", "publish_date", "firstPublishedAt", "createdAt", "created_at"}
	summaryKeys = []string{"excerpt", "description", "summary", "subtitle"}
)

// scriptBlogHref matches quoted blog paths in arbitrary script bodies.
var scriptBlogHref = regexp.MustCompile(`"(/blogs?/[^"\s\\]+)"`)

// scriptTitle matches a "title":"..." pair in script bodies.
var scriptTitle = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.){8,300}?)"`)

// scriptTitleWindow bounds how far from an href a title is looked for.
const scriptTitleWindow = 400

// NextDataParser reads article candidates from Next.js pages: the
// __NEXT_DATA__ payload of the pages router, and failing that the inline
// scripts and streamed payloads of the app router.
type NextDataParser struct{}

// NewNextDataParser creates a new NextDataParser.
func NewNextDataParser() *NextDataParser {
	return &NextDataParser{}
}

// ParseNextData returns the article candidates found in the page's Next.js
// payloads. Candidates point at the same site and are deduplicated by
// normalized URL.
func (p *NextDataParser) ParseNextData(html, baseURL string) ([]*newsscout.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "failed to parse HTML: %v", err)
	}

	set := newCandidateSet(baseURL)

	if raw := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text()); raw != "" {
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err == nil {
			walkNextData(data, baseURL, set)
		}
	}
	if len(set.candidates) > 0 {
		return set.candidates, nil
	}

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		body := sel.Text()
		if strings.Contains(body, "self.__next_f.push") {
			for _, c := range ParseStreamedPayload(body, baseURL) {
				set.add(c)
			}
			return
		}
		for _, c := range scanScriptHrefs(body, baseURL) {
			set.add(c)
		}
	})

	return set.candidates, nil
}

// walkNextData visits every object in data and records the ones that look
// like article references.
func walkNextData(data any, baseURL string, set *candidateSet) {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			walkNextData(item, baseURL, set)
		}
	case map[string]any:
		if c := candidateFromObject(v, baseURL); c != nil {
			set.add(c)
		}
		for _, k := range slices.Sorted(maps.Keys(v)) {
			walkNextData(v[k], baseURL, set)
		}
	}
}

func candidateFromObject(obj map[string]any, baseURL string) *newsscout.Candidate {
	title := firstString(obj, titleKeys...)
	if !newsscout.ValidTitle(title) {
		return nil
	}

	link := ""
	for _, k := range hrefKeys {
		if link = resolveNextHref(baseURL, str(obj[k])); link != "" {
			break
		}
	}
	if link == "" {
		return nil
	}

	c := newsscout.NewCandidate(link, title, newsscout.StrategyNextJS)
	c.Summary = cleanText(firstString(obj, summaryKeys...))
	if ts := firstString(obj, dateKeys...); ts != "" {
		c.PublishedAt = dateparse.ParsePtr(ts)
	}
	c.AddAuthors(personNames(obj["author"])...)
	c.AddAuthors(personNames(obj["authors"])...)
	c.AddTags(tagNames(obj["tags"])...)
	return c
}

// resolveNextHref resolves an href-like value. Bare slugs resolve under the
// page path; paths without a leading slash resolve against the site root.
func resolveNextHref(baseURL, v string) string {
	if v == "" || strings.ContainsAny(v, " \n\t") {
		return ""
	}
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "/") {
		return newsscout.ResolveURL(baseURL, v)
	}
	if strings.Contains(v, ":") {
		return ""
	}
	if strings.Contains(v, "/") {
		return newsscout.ResolveURL(newsscout.SiteRoot(baseURL)+"/", v)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return newsscout.ResolveURL(baseURL, path.Join("/", u.Path, v))
}

func tagNames(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return stringList(v)
	}
	var out []string
	for _, item := range list {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if name := firstString(t, "name", "title", "slug"); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// scanScriptHrefs finds quoted blog paths in a script body and pairs each
// with the closest "title" value within scriptTitleWindow bytes.
func scanScriptHrefs(body, baseURL string) []*newsscout.Candidate {
	var out []*newsscout.Candidate
	for _, m := range scriptBlogHref.FindAllStringSubmatchIndex(body, -1) {
		href := body[m[2]:m[3]]
		link := newsscout.ResolveURL(baseURL, href)
		if link == "" {
			continue
		}
		title := nearestTitle(body, m[0], m[1])
		if title == "" {
			continue
		}
		c := newsscout.NewCandidate(link, title, newsscout.StrategyNextJS)
		out = append(out, c)
	}
	return out
}

func nearestTitle(body string, start, end int) string {
	lo := max(0, start-scriptTitleWindow)
	hi := min(len(body), end+scriptTitleWindow)
	best, bestDist := "", -1
	for _, m := range scriptTitle.FindAllStringSubmatchIndex(body[lo:hi], -1) {
		pos := lo + m[0]
		dist := pos - end
		if pos < start {
			dist = start - pos
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = body[lo+m[2]:lo+m[3]], dist
		}
	}
	if best == "" {
		return ""
	}
	return decodeJSONString(best)
}

// decodeJSONString decodes the contents of a JSON string literal, returning
// the raw text when it is not valid JSON.
func decodeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

// candidateSet accumulates same-site article candidates, deduplicated by
// normalized URL.
type candidateSet struct {
	baseURL    string
	self       string
	seen       map[string]bool
	candidates []*newsscout.Candidate
}

func newCandidateSet(baseURL string) *candidateSet {
	return &candidateSet{
		baseURL: baseURL,
		self:    newsscout.NormalizeURL(baseURL),
		seen:    make(map[string]bool),
	}
}

func (s *candidateSet) add(c *newsscout.Candidate) {
	if c == nil || !newsscout.SameSite(s.baseURL, c.URL) {
		return
	}
	key := newsscout.NormalizeURL(c.URL)
	if key == s.self || s.seen[key] || IsListingURL(c.URL) {
		return
	}
	if u, err := url.Parse(c.URL); err != nil || assetExtensions[strings.ToLower(path.Ext(u.Path))] {
		return
	}
	s.seen[key] = true
	s.candidates = append(s.candidates, c)
}
