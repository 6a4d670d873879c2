package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads OpenGraph and article metadata", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<link rel="canonical" href="/blog/launch">
<meta property="og:url" content="https://ex.com/blog/launch?ref=og">
<meta property="og:title" content="  Launching   version two ">
<meta property="og:description" content="All the details.">
<meta name="author" content="Jane Doe">
<meta property="article:published_time" content="2024-01-02T03:04:05Z">
<meta property="article:tag" content="launch">
<meta property="article:tag" content="product">
<meta property="article:section" content="Announcements">
<script type="application/ld+json">{"@type":"BlogPosting","headline":"Launching version two","url":"https://ex.com/blog/launch"}</script>
</head><body></body></html>`

		meta, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://ex.com/blog/launch")
		require.NoError(t, err)

		assert.Equal(t, "https://ex.com/blog/launch", meta.Canonical)
		assert.Equal(t, "https://ex.com/blog/launch?ref=og", meta.OGURL)
		assert.Equal(t, "Launching version two", meta.OGTitle)
		assert.Equal(t, "All the details.", meta.OGDescription)
		assert.Equal(t, []string{"Jane Doe"}, meta.Authors)
		require.NotNil(t, meta.PublishedAt)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), *meta.PublishedAt)
		assert.Equal(t, []string{"launch", "product"}, meta.Tags)
		assert.Equal(t, []string{"Announcements"}, meta.Sections)
		require.Len(t, meta.Articles, 1)
		assert.Equal(t, "https://ex.com/blog/launch", meta.Articles[0].URL)
	})

	t.Run("falls back to time element inside article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><time datetime="2024-05-06">May 6</time></article></body></html>`

		meta, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://ex.com/blog/x")
		require.NoError(t, err)
		require.NotNil(t, meta.PublishedAt)
		assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), *meta.PublishedAt)
	})

	t.Run("returns empty metadata for bare pages", func(t *testing.T) {
		t.Parallel()

		meta, err := goquery.NewMetadataExtractor().ExtractMetadata("<html><body>hi</body></html>", "https://ex.com/x")
		require.NoError(t, err)
		assert.Empty(t, meta.Canonical)
		assert.Empty(t, meta.OGURL)
		assert.Nil(t, meta.PublishedAt)
		assert.Empty(t, meta.Articles)
	})
}

var _ newsscout.MetadataExtractor = (*goquery.MetadataExtractor)(nil)
