// Package gofeed implements newsscout.FeedParser using mmcdole/gofeed.
package gofeed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/mmcdole/gofeed"
)

// Ensure Parser implements newsscout.FeedParser at compile time.
var _ newsscout.FeedParser = (*Parser)(nil)

// Parser parses RSS and Atom feeds.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Available always reports true.
func (p *Parser) Available() bool {
	return true
}

// ParseFeed parses an RSS or Atom document.
func (p *Parser) ParseFeed(body []byte) (*newsscout.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	out := &newsscout.Feed{Title: strings.TrimSpace(feed.Title)}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entry := &newsscout.FeedEntry{
			Title:      strings.TrimSpace(item.Title),
			Link:       itemLink(item),
			GUID:       strings.TrimSpace(item.GUID),
			Summary:    item.Description,
			Content:    item.Content,
			Published:  utc(item.PublishedParsed),
			Updated:    utc(item.UpdatedParsed),
			Categories: item.Categories,
		}
		for _, a := range item.Authors {
			if a != nil && strings.TrimSpace(a.Name) != "" {
				entry.Authors = append(entry.Authors, strings.TrimSpace(a.Name))
			}
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, link := range item.Links {
		if link = strings.TrimSpace(link); link != "" {
			return link
		}
	}
	return ""
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
