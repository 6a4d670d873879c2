package scrape

import (
	"context"
	"strings"

	"github.com/fwojciec/newsscout"
)

// maxFeedEntries bounds how many entries are read from a single feed.
const maxFeedEntries = 50

// wellKnownFeedPaths are probed against the site root of every listing page.
var wellKnownFeedPaths = []string{
	"/rss",
	"/rss.xml",
	"/feed",
	"/feed.xml",
	"/atom.xml",
	"/index.xml",
	"/blog/feed",
	"/blog/rss",
	"/blog/rss.xml",
	"/news/feed",
	"/news/rss",
	"/feed.json",
	"/wp-json/wp/v2/posts",
}

// discoverFeeds probes the feeds advertised by page and the well-known feed
// locations of its site.
func (r *run) discoverFeeds(ctx context.Context, page *newsscout.Page) *newsscout.Discovery {
	d := &newsscout.Discovery{}
	start := r.budget.Used()
	defer func() { d.Requests = r.budget.Used() - start }()

	var feedURLs []string
	if r.s.Links != nil {
		links, err := r.s.Links.DiscoverLinks(page.HTML, page.URL)
		if err != nil {
			r.log.Debug("discover links", "url", page.URL, "err", err)
		} else {
			feedURLs = append(feedURLs, links.Feeds...)
		}
	}
	if root := newsscout.SiteRoot(page.URL); root != "" {
		for _, p := range wellKnownFeedPaths {
			feedURLs = append(feedURLs, root+p)
		}
	}

	for _, u := range feedURLs {
		if !r.budget.Allow() {
			break
		}
		d.Add(r.probeFeed(ctx, u)...)
	}
	return d
}

// probeFeed fetches and parses a single feed. Each feed is fetched at most
// once per run.
func (r *run) probeFeed(ctx context.Context, feedURL string) []*newsscout.Candidate {
	key := newsscout.NormalizeURL(feedURL)
	if key == "" || r.feeds[key] {
		return nil
	}
	r.feeds[key] = true

	resp, ok := r.s.fetch(ctx, r.budget, feedURL)
	if !ok {
		return nil
	}

	if isJSONFeed(resp, feedURL) {
		candidates, err := parseJSONFeed([]byte(resp.Body), resp.URL)
		if err != nil {
			r.log.Debug("parse json feed", "url", feedURL, "err", err)
		}
		return candidates
	}

	if r.s.FeedParser == nil || !r.s.FeedParser.Available() {
		return nil
	}
	feed, err := r.s.FeedParser.ParseFeed([]byte(resp.Body))
	if err != nil {
		r.log.Debug("parse feed", "url", feedURL, "err", err)
		return nil
	}
	return feedCandidates(feed, resp.URL)
}

// isJSONFeed decides whether a feed response is JSON rather than XML.
func isJSONFeed(resp *newsscout.Response, feedURL string) bool {
	lower := strings.ToLower(feedURL)
	if strings.Contains(strings.ToLower(resp.ContentType), "json") ||
		strings.HasSuffix(lower, ".json") ||
		strings.Contains(lower, "/wp-json/") {
		return true
	}
	body := strings.TrimSpace(resp.Body)
	return strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[")
}

// feedCandidates converts RSS and Atom entries into candidates.
func feedCandidates(feed *newsscout.Feed, feedURL string) []*newsscout.Candidate {
	var out []*newsscout.Candidate
	for _, e := range feed.Entries {
		if len(out) == maxFeedEntries {
			break
		}
		link := newsscout.ResolveURL(feedURL, e.Link)
		if link == "" && e.Title == "" {
			continue
		}
		if link == "" && isAbsoluteURL(e.GUID) {
			link = e.GUID
		}

		c := newsscout.NewCandidate(link, e.Title, newsscout.StrategyRSS)
		c.Summary = stripHTML(e.Summary)
		c.PublishedAt = e.Published
		if c.PublishedAt == nil {
			c.PublishedAt = e.Updated
		}
		c.AddTags(e.Categories...)
		c.AddAuthors(e.Authors...)
		if isAbsoluteURL(e.GUID) && newsscout.NormalizeURL(e.GUID) != newsscout.NormalizeURL(link) {
			c.AddIdentifiers(e.GUID)
		}
		c.SetExtra("feed_url", feedURL)
		out = append(out, c)
	}
	return out
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
