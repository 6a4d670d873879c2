package newsscout

import "time"

// Feed is a parsed RSS or Atom document.
type Feed struct {
	Title   string
	Entries []*FeedEntry
}

// FeedEntry is a single feed item.
type FeedEntry struct {
	Title      string
	Link       string
	GUID       string
	Summary    string
	Content    string
	Published  *time.Time
	Updated    *time.Time
	Authors    []string
	Categories []string
}

// FeedParser parses XML syndication feeds.
type FeedParser interface {
	// Available reports whether the parser can be used. Callers skip XML
	// feeds silently when it cannot.
	Available() bool

	ParseFeed(body []byte) (*Feed, error)
}

// NopFeedParser is a FeedParser that is never available.
type NopFeedParser struct{}

var _ FeedParser = NopFeedParser{}

func (NopFeedParser) Available() bool { return false }

func (NopFeedParser) ParseFeed([]byte) (*Feed, error) {
	return nil, Errorf(EUNAVAILABLE, "feed parsing is not available")
}
