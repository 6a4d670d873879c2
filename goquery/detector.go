package goquery

import (
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsscout"
)

// Ensure Detector implements newsscout.CMSDetector at compile time.
var _ newsscout.CMSDetector = (*Detector)(nil)

// Detector identifies the CMS behind a page from its meta generator tag,
// its host and the asset and markup markers each CMS leaves behind.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns every CMS it finds signals for, the
// meta generator's platform first. Returns nil if none is recognized.
func (d *Detector) Detect(html, pageURL string) []newsscout.CMS {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var found []newsscout.CMS
	add := func(cms newsscout.CMS) {
		if cms == newsscout.CMSUnknown || slices.Contains(found, cms) {
			return
		}
		found = append(found, cms)
	}

	// Meta generator tags are the most reliable signal when present
	add(d.detectFromMetaGenerator(doc))

	if isMediumHost(pageURL) {
		add(newsscout.CMSMedium)
	}

	// Ghost themes load assets from /assets/built/ with ghost- prefixed names
	if d.hasSelector(doc, "[data-ghost]") ||
		d.hasSelector(doc, "script[src*='ghost-']") ||
		d.hasSelector(doc, "link[href*='ghost-']") ||
		d.hasSelector(doc, "script[data-ghost]") {
		add(newsscout.CMSGhost)
	}

	if d.hasSelector(doc, "script#__NEXT_DATA__") ||
		d.hasSelector(doc, "script[src*='/_next/static/']") ||
		d.hasSelector(doc, "link[href*='/_next/static/']") {
		add(newsscout.CMSNextJS)
	}

	if d.hasSelector(doc, "link[href*='wp-content']") ||
		d.hasSelector(doc, "script[src*='wp-content']") ||
		d.hasSelector(doc, "script[src*='wp-includes']") ||
		d.hasSelector(doc, "link[rel='https://api.w.org/']") {
		add(newsscout.CMSWordPress)
	}

	if d.hasSelector(doc, "html[data-wf-site]") ||
		d.hasSelector(doc, "[data-wf-page]") ||
		d.hasSelector(doc, "script[src*='webflow']") {
		add(newsscout.CMSWebflow)
	}

	// The HubSpot tracking script shows up on sites built with anything
	if d.hasSelector(doc, "script[src*='hs-scripts.com']") ||
		d.hasSelector(doc, "script[src*='hubspot']") ||
		d.hasSelector(doc, "link[href*='hubspot']") ||
		d.hasSelector(doc, "[class*='hs-blog']") {
		add(newsscout.CMSHubSpot)
	}

	return found
}

// detectFromMetaGenerator checks the meta generator tag for CMS identification.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) newsscout.CMS {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return newsscout.CMSUnknown
	}

	switch {
	case strings.Contains(generator, "ghost"):
		return newsscout.CMSGhost
	case strings.Contains(generator, "medium"):
		return newsscout.CMSMedium
	case strings.Contains(generator, "hubspot"):
		return newsscout.CMSHubSpot
	case strings.Contains(generator, "webflow"):
		return newsscout.CMSWebflow
	case strings.Contains(generator, "next.js"):
		return newsscout.CMSNextJS
	case strings.Contains(generator, "wordpress"):
		return newsscout.CMSWordPress
	}

	return newsscout.CMSUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

func isMediumHost(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "medium.com" || strings.HasSuffix(host, ".medium.com")
}
