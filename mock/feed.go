package mock

import "github.com/fwojciec/newsscout"

var _ newsscout.FeedParser = (*FeedParser)(nil)

// FeedParser is a mock implementation of newsscout.FeedParser.
type FeedParser struct {
	AvailableFn func() bool
	ParseFeedFn func(body []byte) (*newsscout.Feed, error)
}

func (p *FeedParser) Available() bool {
	return p.AvailableFn()
}

func (p *FeedParser) ParseFeed(body []byte) (*newsscout.Feed, error) {
	return p.ParseFeedFn(body)
}
