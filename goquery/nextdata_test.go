package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDataParser_ParseNextData(t *testing.T) {
	t.Parallel()

	t.Run("walks __NEXT_DATA__ for article objects", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="__next"></div>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{
  "nav":[{"name":"Pricing","href":"/pricing"}],
  "posts":[
    {"title":"Announcing our Series B","slug":"series-b","publishedAt":"2024-02-01T00:00:00Z","excerpt":"We raised.","author":{"name":"Jane Doe"},"tags":[{"name":"Company"}]},
    {"headline":"A deep dive into our engine","url":"/blog/engine"},
    {"title":"External coverage of us","url":"https://press.example.org/a"}
  ]}},"page":"/blog"}
</script></body></html>`

		candidates, err := goquery.NewNextDataParser().ParseNextData(html, "https://ex.com/blog")
		require.NoError(t, err)
		require.Len(t, candidates, 2)

		byURL := map[string]*newsscout.Candidate{}
		for _, c := range candidates {
			assert.Equal(t, newsscout.StrategyNextJS, c.Strategy)
			byURL[c.URL] = c
		}

		c := byURL["https://ex.com/blog/series-b"]
		require.NotNil(t, c)
		assert.Equal(t, "Announcing our Series B", c.Title)
		assert.Equal(t, "We raised.", c.Summary)
		require.NotNil(t, c.PublishedAt)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *c.PublishedAt)
		assert.Equal(t, []string{"Jane Doe"}, c.Authors)
		assert.Equal(t, []string{"Company"}, c.Tags)

		assert.NotNil(t, byURL["https://ex.com/blog/engine"])
	})

	t.Run("scans scripts for blog hrefs when there is no data payload", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>
window.__DATA__ = [{"href":"/blog/first-post","title":"The very first post"},{"href":"/blog/second-post","title":"The second post we wrote"}];
</script></body></html>`

		candidates, err := goquery.NewNextDataParser().ParseNextData(html, "https://ex.com/blog")
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "https://ex.com/blog/first-post", candidates[0].URL)
		assert.Equal(t, "The very first post", candidates[0].Title)
		assert.Equal(t, "https://ex.com/blog/second-post", candidates[1].URL)
		assert.Equal(t, "The second post we wrote", candidates[1].Title)
	})

	t.Run("parses streamed payload scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>self.__next_f.push([1,"5:[\"$\",\"a\",null,{\"href\":\"/blog/streamed\",\"className\":\"Card_card__x1\",\"children\":[[\"$\",\"h3\",null,{\"className\":\"Card_postTitle__a1\",\"children\":\"Streamed article title\"}]]}]\n"])</script></body></html>`

		candidates, err := goquery.NewNextDataParser().ParseNextData(html, "https://ex.com/blog")
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "https://ex.com/blog/streamed", candidates[0].URL)
		assert.Equal(t, newsscout.StrategyNextJSStream, candidates[0].Strategy)
	})

	t.Run("returns empty for plain pages", func(t *testing.T) {
		t.Parallel()

		candidates, err := goquery.NewNextDataParser().ParseNextData("<html><body><p>hi</p></body></html>", "https://ex.com/blog")
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})
}

func TestParseStreamedPayload(t *testing.T) {
	t.Parallel()

	t.Run("reads every card field", func(t *testing.T) {
		t.Parallel()

		script := `self.__next_f.push([1,"7:[[\"$\",\"a\",\"0\",{\"href\":\"/blog/launch-v2\",\"children\":[[\"$\",\"h2\",null,{\"className\":\"BlogCard_postTitle__Xy12\",\"children\":\"Launch v2 \\u0026 more\"}],[\"$\",\"p\",null,{\"className\":\"BlogCard_postExcerpt__Ab3\",\"children\":\"Everything in v2.\"}],[\"$\",\"span\",null,{\"className\":\"BlogCard_postDate__q\",\"children\":\"2024-01-05\"}],[\"$\",\"span\",null,{\"className\":\"BlogCard_postAuthor__w\",\"children\":\"Jane Doe\"}],[\"$\",\"span\",null,{\"className\":\"BlogCard_postReadingTime__e\",\"children\":\"4 min read\"}]]}],"])
self.__next_f.push([1,"[\"$\",\"a\",\"1\",{\"href\":\"/blog/second\",\"children\":[[\"$\",\"h2\",null,{\"className\":\"BlogCard_postTitle__Xy12\",\"children\":\"The second article\"}]]}]]\n"])`

		candidates := goquery.ParseStreamedPayload(script, "https://ex.com/blog")
		require.Len(t, candidates, 2)

		c := candidates[0]
		assert.Equal(t, "https://ex.com/blog/launch-v2", c.URL)
		assert.Equal(t, "Launch v2 & more", c.Title)
		assert.Equal(t, "Everything in v2.", c.Summary)
		require.NotNil(t, c.PublishedAt)
		assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *c.PublishedAt)
		assert.Equal(t, []string{"Jane Doe"}, c.Authors)
		assert.Equal(t, "4 min read", c.Extra["reading_time"])
		assert.Equal(t, newsscout.StrategyNextJSStream, c.Strategy)

		assert.Equal(t, "https://ex.com/blog/second", candidates[1].URL)
		assert.Equal(t, "The second article", candidates[1].Title)
		assert.Empty(t, candidates[1].Summary)
	})

	t.Run("does not borrow fields from the next card", func(t *testing.T) {
		t.Parallel()

		script := `self.__next_f.push([1,"{\"href\":\"/blog/no-title\"},{\"href\":\"/blog/titled\",\"children\":[{\"className\":\"C_postTitle__1\",\"children\":\"Only this one has a title\"}]}"])`

		candidates := goquery.ParseStreamedPayload(script, "https://ex.com/blog")
		require.Len(t, candidates, 1)
		assert.Equal(t, "https://ex.com/blog/titled", candidates[0].URL)
	})

	t.Run("returns nil without push calls", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.ParseStreamedPayload(`console.log("hi")`, "https://ex.com/"))
	})
}

func TestUnescapeJSString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`say \"hi\"`, `say "hi"`},
		{`a\\b`, `a\b`},
		{`line\nbreak`, "line\nbreak"},
		{`\/blog\/x`, "/blog/x"},
		{`caf\u00e9`, "café"},
		{`\x41BC`, "ABC"},
		{`smile \ud83d\ude00`, "smile 😀"},
		{`it\'s`, "it's"},
		{`trailing\`, `trailing\`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.UnescapeJSString(tt.in))
		})
	}
}

var _ newsscout.NextDataParser = (*goquery.NextDataParser)(nil)
