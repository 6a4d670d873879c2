package newsscout

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Title length bounds for candidates.
const (
	MinTitleLength = 8
	MaxTitleLength = 300
)

// Strategy tags name the discovery technique that produced a candidate.
const (
	StrategyRSS          = "rss"
	StrategyJSONFeed     = "json_feed"
	StrategyWPJSON       = "wp_json"
	StrategyJSONLD       = "json_ld"
	StrategyNextJS       = "next_js"
	StrategyNextJSStream = "next_js_stream"
	StrategyHTML         = "html"
	StrategyHTMLFallback = "html_fallback"
	StrategyHubSpotJSON  = "hubspot_json"
	StrategyWebflowJSON  = "webflow_json"
	StrategySitemap      = "sitemap"
)

// Candidate is an unconfirmed article discovered by one strategy, before
// deduplication. URL is its primary identity.
type Candidate struct {
	URL          string            `json:"url"`
	Title        string            `json:"title"`
	Strategy     string            `json:"strategy"`
	Summary      string            `json:"summary,omitempty"`
	Description  string            `json:"description,omitempty"`
	PublishedAt  *time.Time        `json:"publishedAt,omitempty"`
	Authors      []string          `json:"authors,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Categories   []string          `json:"categories,omitempty"`
	SourceType   string            `json:"sourceType"`
	CanonicalURL string            `json:"canonicalUrl,omitempty"`
	OGURL        string            `json:"ogUrl,omitempty"`
	Identifiers  []string          `json:"identifiers,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`

	// Content is the markdown body recovered during enrichment.
	Content string `json:"content,omitempty"`
}

// NewCandidate returns a candidate with a cleaned title and the default
// source type.
func NewCandidate(url, title, strategy string) *Candidate {
	return &Candidate{
		URL:        url,
		Title:      CleanTitle(title),
		Strategy:   strategy,
		SourceType: SourceTypeBlog,
	}
}

// CleanTitle collapses whitespace and truncates s to MaxTitleLength runes.
func CleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:MaxTitleLength]))
}

// ValidTitle reports whether s is long enough to be accepted as a title.
func ValidTitle(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinTitleLength
}

// Valid reports whether the candidate may enter the candidate pool: it has
// an identifying URL and a title of at least MinTitleLength characters.
func (c *Candidate) Valid() bool {
	return strings.TrimSpace(c.URL) != "" && ValidTitle(c.Title)
}

// IdentitySet returns the normalized URLs that identify the candidate:
// URL, CanonicalURL, OGURL and Identifiers, without duplicates.
func (c *Candidate) IdentitySet() []string {
	var set []string
	add := func(u string) {
		if strings.TrimSpace(u) == "" {
			return
		}
		set = appendUnique(set, NormalizeURL(u))
	}
	add(c.URL)
	add(c.CanonicalURL)
	add(c.OGURL)
	for _, id := range c.Identifiers {
		add(id)
	}
	return set
}

// BestSummary returns the summary, falling back to the description.
func (c *Candidate) BestSummary() string {
	if c.Summary != "" {
		return c.Summary
	}
	return c.Description
}

// Merge folds other into c. Scalar fields are only filled when missing on c,
// set-valued fields are unioned, and every identifying URL of other that c
// does not already carry is added to Identifiers.
func (c *Candidate) Merge(other *Candidate) {
	if other == nil || other == c {
		return
	}

	if c.Summary == "" {
		c.Summary = other.Summary
	}
	if c.Description == "" {
		c.Description = other.Description
	}
	if c.PublishedAt == nil && other.PublishedAt != nil {
		t := *other.PublishedAt
		c.PublishedAt = &t
	}
	if c.CanonicalURL == "" {
		c.CanonicalURL = other.CanonicalURL
	}
	if c.OGURL == "" {
		c.OGURL = other.OGURL
	}
	if c.Content == "" {
		c.Content = other.Content
	}

	c.AddAuthors(other.Authors...)
	c.AddTags(other.Tags...)
	c.AddCategories(other.Categories...)

	known := c.IdentitySet()
	for _, id := range other.IdentitySet() {
		if !contains(known, id) {
			c.Identifiers = append(c.Identifiers, id)
			known = append(known, id)
		}
	}

	for k, v := range other.Extra {
		if _, ok := c.Extra[k]; !ok {
			c.SetExtra(k, v)
		}
	}
}

// AddAuthors adds authors, ignoring blanks and duplicates.
func (c *Candidate) AddAuthors(authors ...string) {
	c.Authors = appendUnique(c.Authors, authors...)
}

// AddTags adds tags, ignoring blanks and duplicates.
func (c *Candidate) AddTags(tags ...string) {
	c.Tags = appendUnique(c.Tags, tags...)
}

// AddCategories adds categories, ignoring blanks and duplicates.
func (c *Candidate) AddCategories(categories ...string) {
	c.Categories = appendUnique(c.Categories, categories...)
}

// AddIdentifiers adds alternate identifying URLs.
func (c *Candidate) AddIdentifiers(ids ...string) {
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !contains(c.Identifiers, id) {
			c.Identifiers = append(c.Identifiers, id)
		}
	}
}

// SetExtra records strategy-specific metadata.
func (c *Candidate) SetExtra(key, value string) {
	if value == "" {
		return
	}
	if c.Extra == nil {
		c.Extra = make(map[string]string)
	}
	c.Extra[key] = value
}

// Clone returns a deep copy of the candidate.
func (c *Candidate) Clone() *Candidate {
	other := *c
	if c.PublishedAt != nil {
		t := *c.PublishedAt
		other.PublishedAt = &t
	}
	other.Authors = append([]string(nil), c.Authors...)
	other.Tags = append([]string(nil), c.Tags...)
	other.Categories = append([]string(nil), c.Categories...)
	other.Identifiers = append([]string(nil), c.Identifiers...)
	if c.Extra != nil {
		other.Extra = make(map[string]string, len(c.Extra))
		for k, v := range c.Extra {
			other.Extra[k] = v
		}
	}
	return &other
}

// appendUnique appends trimmed, non-empty values not already in set.
// Comparison is case-insensitive.
func appendUnique(set []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || containsFold(set, v) {
			continue
		}
		set = append(set, v)
	}
	return set
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
