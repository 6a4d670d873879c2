package newsscout_test

import (
	"testing"

	"github.com/fwojciec/newsscout"
	"github.com/stretchr/testify/assert"
)

func TestSourceTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, newsscout.SourceTypePressRelease, newsscout.SourceTypeFor("https://ex.com/press/2024/launch"))
	assert.Equal(t, newsscout.SourceTypePressRelease, newsscout.SourceTypeFor("https://ex.com/press-releases/a"))
	assert.Equal(t, newsscout.SourceTypeNewsSite, newsscout.SourceTypeFor("https://ex.com/news/1"))
	assert.Equal(t, newsscout.SourceTypeNewsSite, newsscout.SourceTypeFor("https://newsroom.ex.com/a"))
	assert.Equal(t, newsscout.SourceTypeBlog, newsscout.SourceTypeFor("https://ex.com/blog/a"))
	assert.Equal(t, newsscout.SourceTypePressRelease, newsscout.SourceTypeFor("https://ex.com/news/press/a"))
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		summary string
		tags    []string
		cats    []string
		want    string
	}{
		{"pricing", "New pricing for teams", "", nil, nil, newsscout.CategoryPricing},
		{"funding", "Acme raised $20M Series B", "", nil, nil, newsscout.CategoryFunding},
		{"launch", "Launch v2", "", nil, nil, newsscout.CategoryLaunch},
		{"security", "Our SOC 2 report is out", "", nil, nil, newsscout.CategorySecurity},
		{"api from tags", "Better building blocks", "", []string{"API"}, nil, newsscout.CategoryAPI},
		{"integration", "Acme now integrates with Slack", "", nil, nil, newsscout.CategoryIntegration},
		{"deprecation", "Sunsetting the legacy dashboard", "", nil, nil, newsscout.CategoryDeprecation},
		{"acquisition", "Acme to acquire Widgets Inc", "", nil, nil, newsscout.CategoryAcquisition},
		{"partnership", "A partnership with Globex", "", nil, nil, newsscout.CategoryPartnership},
		{"model release", "Our largest model yet", "", nil, nil, newsscout.CategoryModelRelease},
		{"performance", "Queries are 3x faster", "", nil, nil, newsscout.CategoryPerformance},
		{"research", "What our research shows", "", nil, nil, newsscout.CategoryResearch},
		{"community event", "Join our webinar next week", "", nil, nil, newsscout.CategoryCommunityEvent},
		{"strategy", "Our roadmap for 2025", "", nil, nil, newsscout.CategoryStrategy},
		{"technical", "How we built our storage engine", "", nil, nil, newsscout.CategoryTechnical},
		{"first rule wins", "Introducing new pricing", "", nil, nil, newsscout.CategoryPricing},
		{"summary contributes", "Big News", "We are announcing something", nil, nil, newsscout.CategoryLaunch},
		{"api is not matched inside words", "Rapid growth in Q3 numbers", "", nil, nil, newsscout.CategoryProductUpdate},
		{"press fallback", "Big News", "", nil, []string{"Press Releases"}, newsscout.CategoryPress},
		{"research fallback", "Big News", "", nil, []string{"Research"}, newsscout.CategoryResearch},
		{"default", "Big News", "", nil, nil, newsscout.CategoryProductUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newsscout.NewCandidate("https://ex.com/a", tt.title, "rss")
			c.Summary = tt.summary
			c.AddTags(tt.tags...)
			c.AddCategories(tt.cats...)

			assert.Equal(t, tt.want, newsscout.Categorize(c))
		})
	}
}
