package http_test

import (
	"testing"
	"time"

	nshttp "github.com/fwojciec/newsscout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapParser_ParseSitemap(t *testing.T) {
	t.Parallel()

	t.Run("parses news sitemap entries", func(t *testing.T) {
		t.Parallel()

		body := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
        xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">
  <url>
    <loc>https://ex.com/news/launch</loc>
    <lastmod>2024-01-02</lastmod>
    <news:news>
      <news:publication>
        <news:name>Ex</news:name>
        <news:language>en</news:language>
      </news:publication>
      <news:publication_date>2024-01-01T09:00:00Z</news:publication_date>
      <news:title>Ex launches version two</news:title>
      <news:keywords>launch, product</news:keywords>
    </news:news>
  </url>
  <url><loc>https://ex.com/about</loc></url>
</urlset>`

		sitemap, err := nshttp.NewSitemapParser().ParseSitemap([]byte(body))
		require.NoError(t, err)
		require.Len(t, sitemap.Entries, 2)

		entry := sitemap.Entries[0]
		assert.Equal(t, "https://ex.com/news/launch", entry.Loc)
		assert.Equal(t, "Ex launches version two", entry.NewsTitle)
		require.NotNil(t, entry.NewsPublished)
		assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), *entry.NewsPublished)
		require.NotNil(t, entry.LastMod)
		assert.Equal(t, []string{"launch", "product"}, entry.Keywords)

		assert.Equal(t, "https://ex.com/about", sitemap.Entries[1].Loc)
		assert.Empty(t, sitemap.Entries[1].NewsTitle)
		assert.Nil(t, sitemap.Entries[1].LastMod)
	})

	t.Run("parses sitemap index", func(t *testing.T) {
		t.Parallel()

		body := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://ex.com/sitemap-pages.xml</loc></sitemap>
  <sitemap><loc> https://ex.com/sitemap-news.xml </loc></sitemap>
  <sitemap><loc></loc></sitemap>
</sitemapindex>`

		sitemap, err := nshttp.NewSitemapParser().ParseSitemap([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, []string{"https://ex.com/sitemap-pages.xml", "https://ex.com/sitemap-news.xml"}, sitemap.Sitemaps)
		assert.Empty(t, sitemap.Entries)
	})

	t.Run("rejects malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := nshttp.NewSitemapParser().ParseSitemap([]byte("<<urlset>"))
		require.Error(t, err)
	})

	t.Run("rejects HTML documents", func(t *testing.T) {
		t.Parallel()

		_, err := nshttp.NewSitemapParser().ParseSitemap([]byte("<html><body>not found</body></html>"))
		require.Error(t, err)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		t.Parallel()

		_, err := nshttp.NewSitemapParser().ParseSitemap(nil)
		require.Error(t, err)
	})
}
