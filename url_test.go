package newsscout_test

import (
	"testing"

	"github.com/fwojciec/newsscout"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips fragment", "https://ex.com/a#utm=1", "https://ex.com/a"},
		{"drops trailing slash", "https://ex.com/blog/", "https://ex.com/blog"},
		{"keeps root slash", "https://ex.com/", "https://ex.com/"},
		{"collapses repeated slashes", "https://ex.com//blog///post", "https://ex.com/blog/post"},
		{"lower-cases scheme and host", "HTTPS://Ex.COM/Post", "https://ex.com/Post"},
		{"keeps query", "https://ex.com/a/?page=2", "https://ex.com/a?page=2"},
		{"returns relative input unchanged", "/blog/post", "/blog/post"},
		{"returns garbage unchanged", "::not a url", "::not a url"},
		{"returns empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, newsscout.NormalizeURL(tt.in))
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://ex.com/a#utm=1",
		"https://ex.com//a//",
		"https://ex.com/a/b/?x=1#frag",
		"https://ex.com",
		"https://ex.com/",
		"https://ex.com/%2F%2Fencoded/",
		"http://EX.com:8080/path//to/",
		"mailto:someone@example.com",
		"::bad",
		"/relative//path/",
		"https://ex.com/a?",
		"https://ex.com/caf%C3%A9/",
	}

	for _, in := range inputs {
		once := newsscout.NormalizeURL(in)
		assert.Equal(t, once, newsscout.NormalizeURL(once), "input %q", in)
	}
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	base := "https://ex.com/blog/"

	assert.Equal(t, "https://ex.com/blog/post-1", newsscout.ResolveURL(base, "post-1"))
	assert.Equal(t, "https://ex.com/news/1", newsscout.ResolveURL(base, "/news/1"))
	assert.Equal(t, "https://cdn.ex.com/a", newsscout.ResolveURL(base, "//cdn.ex.com/a"))
	assert.Equal(t, "https://other.com/a", newsscout.ResolveURL(base, "https://other.com/a"))
	assert.Empty(t, newsscout.ResolveURL(base, ""))
	assert.Empty(t, newsscout.ResolveURL(base, "#top"))
	assert.Empty(t, newsscout.ResolveURL(base, "javascript:void(0)"))
	assert.Empty(t, newsscout.ResolveURL(base, "mailto:a@ex.com"))
	assert.Empty(t, newsscout.ResolveURL("", "/relative"))
}

func TestSameSite(t *testing.T) {
	t.Parallel()

	assert.True(t, newsscout.SameSite("https://www.ex.com/a", "https://ex.com/b"))
	assert.True(t, newsscout.SameSite("https://EX.com/a", "http://ex.com"))
	assert.False(t, newsscout.SameSite("https://blog.ex.com/a", "https://ex.com/b"))
	assert.False(t, newsscout.SameSite("", ""))
}

func TestSiteRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://ex.com", newsscout.SiteRoot("https://ex.com/blog/post?x=1"))
	assert.Equal(t, "http://127.0.0.1:8080", newsscout.SiteRoot("http://127.0.0.1:8080/"))
	assert.Empty(t, newsscout.SiteRoot("/blog"))
}
