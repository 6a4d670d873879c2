package newsscout

import (
	"strings"
	"unicode"
)

// Source types assigned to news items.
const (
	SourceTypeBlog         = "blog"
	SourceTypePressRelease = "press_release"
	SourceTypeNewsSite     = "news_site"
)

// Categories assigned to news items.
const (
	CategoryPricing        = "pricing"
	CategoryFunding        = "funding"
	CategoryLaunch         = "launch"
	CategorySecurity       = "security"
	CategoryAPI            = "api"
	CategoryIntegration    = "integration"
	CategoryDeprecation    = "deprecation"
	CategoryAcquisition    = "acquisition"
	CategoryPartnership    = "partnership"
	CategoryModelRelease   = "model-release"
	CategoryPerformance    = "performance"
	CategoryResearch       = "research"
	CategoryCommunityEvent = "community-event"
	CategoryStrategy       = "strategy"
	CategoryTechnical      = "technical"
	CategoryPress          = "press"
	CategoryProductUpdate  = "product update"
)

// categoryRule maps a set of keywords to a category. A rule matches when any
// keyword is a substring of the normalized text.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is evaluated in order; the first matching rule wins.
// Keywords are matched against text padded with spaces and stripped of
// punctuation, so a leading space anchors a keyword at a word start.
//
// The table is keyword heuristics over vendor prose and drifts as that prose
// changes; it is not a stable contract.
var categoryRules = []categoryRule{
	{CategoryPricing, []string{"pricing", " price", " plan", "billing", "discount", " cost", "subscription", "free tier"}},
	{CategoryFunding, []string{"funding", " raised", " raises", "series a ", "series b ", "series c ", "seed round", "investment", "investor", "valuation"}},
	{CategoryLaunch, []string{"launch", "introducing", "announcing", "now available", " release", "unveil", "new feature", "general availability"}},
	{CategorySecurity, []string{"security", "vulnerab", " breach", " cve ", "compliance", "soc 2", " gdpr", " privacy", "encryption"}},
	{CategoryAPI, []string{" api ", " apis ", " sdk", "endpoint", "developer", "webhook"}},
	{CategoryIntegration, []string{"integration", "integrates", "connector", " plugin", "marketplace"}},
	{CategoryDeprecation, []string{"deprecat", "sunset", "end of life", " retire", "discontinu", "migration guide"}},
	{CategoryAcquisition, []string{" acquire", "acquisition", " merger"}},
	{CategoryPartnership, []string{" partner", "collaborat", " alliance"}},
	{CategoryModelRelease, []string{" model", " gpt", " llm", " weights ", "checkpoint", "fine tun"}},
	{CategoryPerformance, []string{"performance", " faster", "latency", "benchmark", " speed", " uptime", "scalab"}},
	{CategoryResearch, []string{"research", " paper", " study ", "findings", "whitepaper"}},
	{CategoryCommunityEvent, []string{"webinar", "conference", " event", "meetup", " summit", "hackathon", "community"}},
	{CategoryStrategy, []string{"strategy", " vision", "roadmap", " mission", "leadership", " ceo "}},
	{CategoryTechnical, []string{"engineering", "architecture", "infrastructure", "technical", "deep dive", "how we built"}},
}

// SourceTypeFor infers the source type from an article URL.
func SourceTypeFor(rawURL string) string {
	u := strings.ToLower(rawURL)
	switch {
	case strings.Contains(u, "/press"):
		return SourceTypePressRelease
	case strings.Contains(u, "/news"), strings.Contains(u, "newsroom"):
		return SourceTypeNewsSite
	default:
		return SourceTypeBlog
	}
}

// Categorize infers a category from the candidate's title, summary and tags.
// When no keyword rule matches it falls back to the candidate's own
// categories, then to CategoryProductUpdate.
func Categorize(c *Candidate) string {
	text := classificationText(c.Title, c.BestSummary(), strings.Join(c.Tags, " "))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}

	for _, cat := range c.Categories {
		lower := strings.ToLower(cat)
		if strings.Contains(lower, "press") {
			return CategoryPress
		}
		if strings.Contains(lower, "research") {
			return CategoryResearch
		}
	}

	return CategoryProductUpdate
}

// classificationText joins parts into one lower-cased blob with
// punctuation replaced by spaces and a space on either end.
func classificationText(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		for _, r := range strings.ToLower(part) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(' ')
	}
	return " " + strings.Join(strings.Fields(b.String()), " ") + " "
}
