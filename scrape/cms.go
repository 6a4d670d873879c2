package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/newsscout"
)

// discoverCMS runs the adapter of every platform detected on page.
func (r *run) discoverCMS(ctx context.Context, page *newsscout.Page) *newsscout.Discovery {
	d := &newsscout.Discovery{}
	start := r.budget.Used()
	defer func() { d.Requests = r.budget.Used() - start }()

	var detected []newsscout.CMS
	if r.s.Detector != nil {
		detected = r.s.Detector.Detect(page.HTML, page.URL)
	}
	mounts := mountPoints(page.URL)

	nextDone := false
	for _, cms := range detected {
		if r.full(d) {
			return d
		}
		switch cms {
		case newsscout.CMSGhost:
			for _, m := range mounts {
				d.Add(r.probeFeed(ctx, m+"/rss/")...)
			}
		case newsscout.CMSMedium:
			d.Add(r.probeFeed(ctx, mediumFeedURL(page.URL))...)
		case newsscout.CMSWordPress:
			for _, m := range mounts {
				d.Add(r.probeFeed(ctx, m+"/wp-json/wp/v2/posts")...)
				d.Add(r.probeFeed(ctx, m+"/feed")...)
			}
		case newsscout.CMSHubSpot:
			d.Add(r.listingJSON(ctx, page.URL, parseHubSpotListing)...)
		case newsscout.CMSWebflow:
			d.Add(r.listingJSON(ctx, page.URL, parseWebflowListing)...)
		case newsscout.CMSNextJS:
			d.Add(r.nextData(page)...)
			nextDone = true
		}
	}
	if !nextDone && hasNextPayload(page.HTML) {
		d.Add(r.nextData(page)...)
	}
	return d
}

// listingJSON fetches the format=json variant of a listing page and parses
// it with parse.
func (r *run) listingJSON(ctx context.Context, pageURL string, parse func(body []byte, baseURL string) ([]*newsscout.Candidate, error)) []*newsscout.Candidate {
	jsonURL := withFormatJSON(pageURL)
	if jsonURL == "" {
		return nil
	}
	resp, ok := r.s.fetch(ctx, r.budget, jsonURL)
	if !ok {
		return nil
	}
	candidates, err := parse([]byte(resp.Body), pageURL)
	if err != nil {
		r.log.Debug("parse listing json", "url", jsonURL, "err", err)
		return nil
	}
	return candidates
}

func (r *run) nextData(page *newsscout.Page) []*newsscout.Candidate {
	if r.s.NextData == nil {
		return nil
	}
	candidates, err := r.s.NextData.ParseNextData(page.HTML, page.URL)
	if err != nil {
		r.log.Debug("parse next data", "url", page.URL, "err", err)
		return nil
	}
	return candidates
}

func hasNextPayload(html string) bool {
	return strings.Contains(html, "__NEXT_DATA__") || strings.Contains(html, "self.__next_f.push")
}

// mountPoints returns where a blog engine serving pageURL may be installed:
// the listing page's own path when it sits below the root, then the root.
func mountPoints(pageURL string) []string {
	root := newsscout.SiteRoot(pageURL)
	if root == "" {
		return nil
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return []string{root}
	}
	if p := strings.TrimRight(u.Path, "/"); p != "" {
		return []string{root + p, root}
	}
	return []string{root}
}

// mediumFeedURL returns the Medium feed for a profile or publication page.
func mediumFeedURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	origin := u.Scheme + "://" + u.Host
	if strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), "medium.com") {
		slug, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if slug != "" {
			return "https://medium.com/feed/" + slug
		}
	}
	return origin + "/feed"
}

// withFormatJSON sets format=json on pageURL, replacing any existing value.
func withFormatJSON(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	q := u.Query()
	q.Set("format", "json")
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}
