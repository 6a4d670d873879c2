package readability_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Introducing the new billing API</title>
<meta name="author" content="Jane Doe and John Roe">
<meta property="article:published_time" content="2024-03-05T10:00:00Z">
</head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h1>Introducing the new billing API</h1>
<p>This is the important article paragraph text that must be kept in the extracted body.</p>
<p>Second paragraph of the announcement with enough words to count as content.</p>
<ul><li>First item</li><li>Second item</li></ul>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("", "https://example.com/blog/post")

	require.Error(t, err)
	assert.Equal(t, newsscout.EINVALID, newsscout.ErrorCode(err))
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articleHTML, "https://example.com/blog/billing-api")
	require.NoError(t, err)

	t.Run("keeps the article body", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, result.ContentHTML, "important article paragraph text")
		assert.Contains(t, result.ContentHTML, "<li")
	})

	t.Run("drops navigation and footer", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("splits the byline into authors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"Jane Doe", "John Roe"}, result.Authors)
	})

	t.Run("reports the publication time in UTC", func(t *testing.T) {
		t.Parallel()
		require.NotNil(t, result.PublishedAt)
		assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), *result.PublishedAt)
	})
}

func TestExtractor_ToleratesInvalidPageURL(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articleHTML, "://bad")

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "important article paragraph text")
}
