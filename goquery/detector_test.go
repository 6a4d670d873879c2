package goquery_test

import (
	"testing"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		pageURL string
		want    []newsscout.CMS
	}{
		{
			name:    "ghost from meta generator",
			html:    `<html><head><meta name="generator" content="Ghost 5.70"></head><body></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSGhost},
		},
		{
			name:    "ghost from asset markers",
			html:    `<html><head><script src="/assets/built/ghost-portal.min.js"></script></head><body></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSGhost},
		},
		{
			name:    "medium from host",
			html:    `<html><body><h1>Stories</h1></body></html>`,
			pageURL: "https://medium.com/@acme",
			want:    []newsscout.CMS{newsscout.CMSMedium},
		},
		{
			name:    "medium from subdomain",
			html:    `<html><body></body></html>`,
			pageURL: "https://acme.medium.com/",
			want:    []newsscout.CMS{newsscout.CMSMedium},
		},
		{
			name:    "hubspot from script host",
			html:    `<html><body><script src="//js.hs-scripts.com/123.js"></script></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSHubSpot},
		},
		{
			name:    "webflow from site attribute",
			html:    `<html data-wf-site="abc" data-wf-page="def"><body></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSWebflow},
		},
		{
			name:    "nextjs from data script",
			html:    `<html><body><div id="__next"></div><script id="__NEXT_DATA__" type="application/json">{}</script></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSNextJS},
		},
		{
			name:    "nextjs from static chunks",
			html:    `<html><head><script src="/_next/static/chunks/main.js"></script></head><body></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSNextJS},
		},
		{
			name:    "wordpress from meta generator",
			html:    `<html><head><meta name="generator" content="WordPress 6.4"></head><body></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSWordPress},
		},
		{
			name:    "wordpress from wp-content assets",
			html:    `<html><head><link rel="stylesheet" href="/wp-content/themes/x/style.css"></head><body></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSWordPress},
		},
		{
			name:    "meta generator comes before markup",
			html:    `<html><head><meta name="generator" content="Ghost 5"><script src="/_next/static/x.js"></script></head></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSGhost, newsscout.CMSNextJS},
		},
		{
			name:    "nextjs site with hubspot tracking",
			html:    `<html><head><script src="https://js.hs-scripts.com/123.js"></script></head><body><script id="__NEXT_DATA__" type="application/json">{}</script></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSNextJS, newsscout.CMSHubSpot},
		},
		{
			name:    "generator and markup for the same platform",
			html:    `<html><head><meta name="generator" content="WordPress 6.4"><script src="/wp-includes/js/x.js"></script></head></html>`,
			pageURL: "https://ex.com/blog",
			want:    []newsscout.CMS{newsscout.CMSWordPress},
		},
		{
			name:    "unknown",
			html:    `<html><body><article><a href="/blog/a">A</a></article></body></html>`,
			pageURL: "https://ex.com/blog",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := goquery.NewDetector()
			assert.Equal(t, tt.want, d.Detect(tt.html, tt.pageURL))
		})
	}
}

var _ newsscout.CMSDetector = (*goquery.Detector)(nil)
