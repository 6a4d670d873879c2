package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// Ensure StructuredDataExtractor implements newsscout.StructuredDataExtractor at compile time.
var _ newsscout.StructuredDataExtractor = (*StructuredDataExtractor)(nil)

// articleTypes are the schema.org types treated as articles.
var articleTypes = map[string]bool{
	"NewsArticle": true,
	"BlogPosting": true,
	"Article":     true,
}

// StructuredDataExtractor reads article candidates from JSON-LD blocks.
type StructuredDataExtractor struct{}

// NewStructuredDataExtractor creates a new StructuredDataExtractor.
func NewStructuredDataExtractor() *StructuredDataExtractor {
	return &StructuredDataExtractor{}
}

// ExtractStructured returns a candidate for every NewsArticle, BlogPosting
// or Article node, including nodes nested in @graph. Malformed blocks are
// skipped.
func (e *StructuredDataExtractor) ExtractStructured(html, baseURL string) ([]*newsscout.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "failed to parse HTML: %v", err)
	}
	return jsonLDArticles(doc, baseURL), nil
}

func jsonLDArticles(doc *goquery.Document, baseURL string) []*newsscout.Candidate {
	var candidates []*newsscout.Candidate
	doc.Find("script[type]").Each(func(_ int, sel *goquery.Selection) {
		if !strings.Contains(strings.ToLower(sel.AttrOr("type", "")), "ld+json") {
			return
		}
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return
		}
		for _, node := range flattenGraph(data) {
			if c := articleFromNode(node, baseURL); c != nil {
				candidates = append(candidates, c)
			}
		}
	})
	return candidates
}

// flattenGraph returns every object in data, descending into arrays and
// @graph members.
func flattenGraph(data any) []map[string]any {
	var out []map[string]any
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			out = append(out, flattenGraph(item)...)
		}
	case map[string]any:
		out = append(out, v)
		if graph, ok := v["@graph"]; ok {
			out = append(out, flattenGraph(graph)...)
		}
	}
	return out
}

func isArticleNode(node map[string]any) bool {
	for _, t := range stringList(node["@type"]) {
		t = strings.TrimPrefix(strings.TrimPrefix(t, "https://schema.org/"), "http://schema.org/")
		if articleTypes[t] {
			return true
		}
	}
	return false
}

func articleFromNode(node map[string]any, baseURL string) *newsscout.Candidate {
	if !isArticleNode(node) {
		return nil
	}

	link := ""
	for _, raw := range []string{str(node["url"]), idOf(node["mainEntityOfPage"]), str(node["@id"])} {
		if link = newsscout.ResolveURL(baseURL, raw); link != "" {
			break
		}
	}
	title := firstString(node, "headline", "name")
	if link == "" || title == "" {
		return nil
	}

	c := newsscout.NewCandidate(link, title, newsscout.StrategyJSONLD)
	c.Summary = cleanText(str(node["description"]))
	if ts := firstString(node, "datePublished", "dateCreated"); ts != "" {
		c.PublishedAt = dateparse.ParsePtr(ts)
	}
	c.AddAuthors(personNames(node["author"])...)
	c.AddTags(keywords(node["keywords"])...)
	c.AddCategories(stringList(node["articleSection"])...)
	return c
}

// idOf returns v when it is a string, or its @id (or url) when it is an object.
func idOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if id := str(t["@id"]); id != "" {
			return id
		}
		return str(t["url"])
	}
	return ""
}

// personNames reads names from a string, a person object or a list of either.
func personNames(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case map[string]any:
		if name := str(t["name"]); name != "" {
			return []string{name}
		}
	case []any:
		var names []string
		for _, item := range t {
			names = append(names, personNames(item)...)
		}
		return names
	}
	return nil
}

// keywords reads a list or a comma separated string.
func keywords(v any) []string {
	if s, ok := v.(string); ok {
		return strings.Split(s, ",")
	}
	return stringList(v)
}

// stringList reads a string or a list of strings.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstString(node map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(node[k]); s != "" {
			return s
		}
	}
	return ""
}
