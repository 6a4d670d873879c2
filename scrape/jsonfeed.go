package scrape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

type jsonFeed struct {
	Items []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	ID            json.RawMessage  `json:"id"`
	URL           string           `json:"url"`
	ExternalURL   string           `json:"external_url"`
	Title         string           `json:"title"`
	Summary       string           `json:"summary"`
	ContentText   string           `json:"content_text"`
	DatePublished string           `json:"date_published"`
	DateModified  string           `json:"date_modified"`
	Tags          []string         `json:"tags"`
	Authors       []jsonFeedAuthor `json:"authors"`
	Author        *jsonFeedAuthor  `json:"author"`
}

type jsonFeedAuthor struct {
	Name string `json:"name"`
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	Link    string     `json:"link"`
	Title   wpRendered `json:"title"`
	Excerpt wpRendered `json:"excerpt"`
	Date    string     `json:"date"`
	DateGMT string     `json:"date_gmt"`
}

// parseJSONFeed reads a JSON Feed document or a WordPress REST posts array.
func parseJSONFeed(body []byte, feedURL string) ([]*newsscout.Candidate, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, newsscout.Errorf(newsscout.EINVALID, "empty JSON feed")
	}

	if body[0] == '[' {
		var posts []wpPost
		if err := json.Unmarshal(body, &posts); err != nil {
			return nil, fmt.Errorf("decoding posts: %w", err)
		}
		return wpCandidates(posts, feedURL), nil
	}

	var feed jsonFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return jsonFeedCandidates(feed.Items, feedURL), nil
}

func jsonFeedCandidates(items []jsonFeedItem, feedURL string) []*newsscout.Candidate {
	var out []*newsscout.Candidate
	for _, item := range items {
		if len(out) == maxFeedEntries {
			break
		}
		id := rawString(item.ID)
		link := firstNonEmpty(item.URL, item.ExternalURL)
		if link == "" && isAbsoluteURL(id) {
			link = id
		}
		link = newsscout.ResolveURL(feedURL, link)
		if link == "" && item.Title == "" {
			continue
		}

		c := newsscout.NewCandidate(link, item.Title, newsscout.StrategyJSONFeed)
		c.Summary = stripHTML(firstNonEmpty(item.Summary, item.ContentText))
		c.PublishedAt = dateparse.ParsePtr(item.DatePublished)
		if c.PublishedAt == nil {
			c.PublishedAt = dateparse.ParsePtr(item.DateModified)
		}
		c.AddTags(item.Tags...)
		for _, a := range item.Authors {
			c.AddAuthors(a.Name)
		}
		if item.Author != nil {
			c.AddAuthors(item.Author.Name)
		}
		if isAbsoluteURL(id) && newsscout.NormalizeURL(id) != newsscout.NormalizeURL(link) {
			c.AddIdentifiers(id)
		}
		c.SetExtra("feed_url", feedURL)
		out = append(out, c)
	}
	return out
}

func wpCandidates(posts []wpPost, feedURL string) []*newsscout.Candidate {
	var out []*newsscout.Candidate
	for _, p := range posts {
		if len(out) == maxFeedEntries {
			break
		}
		link := newsscout.ResolveURL(feedURL, p.Link)
		title := stripHTML(p.Title.Rendered)
		if link == "" && title == "" {
			continue
		}

		c := newsscout.NewCandidate(link, title, newsscout.StrategyWPJSON)
		c.Summary = stripHTML(p.Excerpt.Rendered)
		c.PublishedAt = dateparse.ParsePtr(firstNonEmpty(p.DateGMT, p.Date))
		c.SetExtra("feed_url", feedURL)
		out = append(out, c)
	}
	return out
}

// rawString returns a JSON string value, or the literal text of any other
// scalar.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
