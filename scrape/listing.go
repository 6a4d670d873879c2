package scrape

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/dateparse"
)

// parseHubSpotListing reads the JSON listing HubSpot blogs serve for
// format=json.
func parseHubSpotListing(body []byte, baseURL string) ([]*newsscout.Candidate, error) {
	objects, err := listingObjects(body, "objects", "results", "items")
	if err != nil {
		return nil, err
	}

	var out []*newsscout.Candidate
	for _, obj := range objects {
		link := newsscout.ResolveURL(baseURL, stringField(obj, "url", "absoluteUrl", "absolute_url"))
		title := stripHTML(stringField(obj, "title", "name", "htmlTitle"))
		if link == "" || title == "" {
			continue
		}
		c := newsscout.NewCandidate(link, title, newsscout.StrategyHubSpotJSON)
		c.Summary = stripHTML(stringField(obj, "metaDescription", "postSummary"))
		c.PublishedAt = timeField(obj, "publishDate", "publish_date")
		out = append(out, c)
	}
	return out, nil
}

// parseWebflowListing reads the JSON listing of Webflow CMS collections.
func parseWebflowListing(body []byte, baseURL string) ([]*newsscout.Candidate, error) {
	objects, err := listingObjects(body, "items", "posts")
	if err != nil {
		return nil, err
	}

	var out []*newsscout.Candidate
	for _, obj := range objects {
		link := stringField(obj, "url")
		if link == "" {
			link = slugURL(baseURL, stringField(obj, "slug"))
		}
		link = newsscout.ResolveURL(baseURL, link)
		title := stripHTML(stringField(obj, "name", "title"))
		if link == "" || title == "" {
			continue
		}
		c := newsscout.NewCandidate(link, title, newsscout.StrategyWebflowJSON)
		c.Summary = stripHTML(stringField(obj, "summary", "post-summary", "excerpt"))
		c.PublishedAt = timeField(obj, "published-on", "publishedOn", "published_on")
		out = append(out, c)
	}
	return out, nil
}

// listingObjects returns the objects of a top-level array, or of the first
// of keys holding an array.
func listingObjects(body []byte, keys ...string) ([]map[string]any, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}

	var list []any
	switch v := data.(type) {
	case []any:
		list = v
	case map[string]any:
		for _, k := range keys {
			if arr, ok := v[k].([]any); ok {
				list = arr
				break
			}
		}
	}

	var objects []map[string]any
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// timeField parses a date string or a Unix timestamp in seconds or
// milliseconds.
func timeField(obj map[string]any, keys ...string) *time.Time {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if t := dateparse.ParsePtr(v); t != nil {
				return t
			}
		case float64:
			if v <= 0 || math.IsInf(v, 0) {
				continue
			}
			var t time.Time
			if v > 1e11 {
				t = time.UnixMilli(int64(v)).UTC()
			} else {
				t = time.Unix(int64(v), 0).UTC()
			}
			return &t
		}
	}
	return nil
}

// slugURL places a bare slug under the listing path.
func slugURL(baseURL, slug string) string {
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "/") {
		return slug
	}
	base, _, _ := strings.Cut(baseURL, "?")
	return strings.TrimSuffix(base, "/") + "/" + slug
}
