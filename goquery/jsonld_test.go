package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredDataExtractor_ExtractStructured(t *testing.T) {
	t.Parallel()

	t.Run("extracts a NewsArticle", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script type="application/ld+json">
{"@context":"https://schema.org","@type":"NewsArticle","headline":"Big News",
 "url":"/news/1","datePublished":"2024-01-01T00:00:00Z",
 "description":"Something happened.",
 "author":[{"@type":"Person","name":"Jane Doe"},"John Roe"],
 "keywords":"launch, product","articleSection":["Company"],
 "image":"/img.png","dateModified":"2024-02-01T00:00:00Z"}
</script></head><body></body></html>`

		candidates, err := goquery.NewStructuredDataExtractor().ExtractStructured(html, "https://ex.com/news")
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		c := candidates[0]
		assert.Equal(t, "https://ex.com/news/1", c.URL)
		assert.Equal(t, "Big News", c.Title)
		assert.Equal(t, newsscout.StrategyJSONLD, c.Strategy)
		assert.Equal(t, "Something happened.", c.Summary)
		require.NotNil(t, c.PublishedAt)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *c.PublishedAt)
		assert.Equal(t, []string{"Jane Doe", "John Roe"}, c.Authors)
		assert.Equal(t, []string{"launch", "product"}, c.Tags)
		assert.Equal(t, []string{"Company"}, c.Categories)
	})

	t.Run("flattens @graph and filters types", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebSite","name":"Ex","url":"https://ex.com"},
  {"@type":["BlogPosting"],"name":"Graph post title","mainEntityOfPage":{"@id":"https://ex.com/blog/graph"},"dateCreated":"2024-03-01"},
  {"@type":"TechArticle","headline":"Not an article type","url":"https://ex.com/docs/x"}
]}
</script></head></html>`

		candidates, err := goquery.NewStructuredDataExtractor().ExtractStructured(html, "https://ex.com/blog")
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "https://ex.com/blog/graph", candidates[0].URL)
		assert.Equal(t, "Graph post title", candidates[0].Title)
		require.NotNil(t, candidates[0].PublishedAt)
	})

	t.Run("reads top-level arrays and string mainEntityOfPage", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
[{"@type":"Article","headline":"Array article one","mainEntityOfPage":"https://ex.com/a/1"},
 {"@type":"Article","headline":"Array article two","@id":"https://ex.com/a/2"}]
</script>`

		candidates, err := goquery.NewStructuredDataExtractor().ExtractStructured(html, "https://ex.com/")
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "https://ex.com/a/1", candidates[0].URL)
		assert.Equal(t, "https://ex.com/a/2", candidates[1].URL)
	})

	t.Run("skips malformed blocks", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type":"Article",</script>
<script type="application/ld+json">{"@type":"Article","headline":"Valid block here","url":"/ok"}</script>`

		candidates, err := goquery.NewStructuredDataExtractor().ExtractStructured(html, "https://ex.com/")
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "https://ex.com/ok", candidates[0].URL)
	})

	t.Run("skips nodes without link or title", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">[{"@type":"Article","headline":"No link"},{"@type":"Article","url":"/x"}]</script>`

		candidates, err := goquery.NewStructuredDataExtractor().ExtractStructured(html, "https://ex.com/")
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})
}

var _ newsscout.StructuredDataExtractor = (*goquery.StructuredDataExtractor)(nil)
