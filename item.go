package newsscout

import (
	"context"
	"time"
)

// NewsItem is a classified article produced by a scrape run.
type NewsItem struct {
	ID          string     `json:"id,omitempty"`
	CompanyID   string     `json:"companyId,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	SourceURL   string     `json:"sourceUrl"`
	SourceType  string     `json:"sourceType"`
	CompanyName string     `json:"companyName"`
	Category    string     `json:"category"`
	PublishedAt time.Time  `json:"publishedAt"`
	Authors     []string   `json:"authors"`
	Tags        []string   `json:"tags"`
	Strategy    string     `json:"strategy"`
	ContentHash string     `json:"contentHash,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Validate returns an error if the item contains invalid fields.
func (i *NewsItem) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "news item title required")
	}
	if i.SourceURL == "" {
		return Errorf(EINVALID, "news item source URL required")
	}
	return nil
}

// ItemService represents a service for managing news items.
type ItemService interface {
	// CreateItem creates a new item.
	// Returns ECONFLICT if an item with the same source URL exists.
	CreateItem(ctx context.Context, item *NewsItem) error

	// SaveItems stores items for a company, skipping items whose source URL
	// is already stored. Returns the number of items saved.
	SaveItems(ctx context.Context, companyID string, items []*NewsItem) (int, error)

	// FindItems retrieves items matching the filter, newest first.
	FindItems(ctx context.Context, filter ItemFilter) ([]*NewsItem, error)

	// DeleteItemsByCompany removes all items for a company.
	DeleteItemsByCompany(ctx context.Context, companyID string) error
}

// ItemFilter represents a filter for FindItems.
type ItemFilter struct {
	CompanyID *string `json:"companyId"`
	SourceURL *string `json:"sourceUrl"`
	Category  *string `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
