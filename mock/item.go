package mock

import (
	"context"

	"github.com/fwojciec/newsscout"
)

var (
	_ newsscout.ItemService = (*ItemService)(nil)
	_ newsscout.ItemStore   = (*ItemStore)(nil)
)

// ItemService is a mock implementation of newsscout.ItemService.
type ItemService struct {
	CreateItemFn           func(ctx context.Context, item *newsscout.NewsItem) error
	SaveItemsFn            func(ctx context.Context, companyID string, items []*newsscout.NewsItem) (int, error)
	FindItemsFn            func(ctx context.Context, filter newsscout.ItemFilter) ([]*newsscout.NewsItem, error)
	DeleteItemsByCompanyFn func(ctx context.Context, companyID string) error
}

func (s *ItemService) CreateItem(ctx context.Context, item *newsscout.NewsItem) error {
	return s.CreateItemFn(ctx, item)
}

func (s *ItemService) SaveItems(ctx context.Context, companyID string, items []*newsscout.NewsItem) (int, error) {
	return s.SaveItemsFn(ctx, companyID, items)
}

func (s *ItemService) FindItems(ctx context.Context, filter newsscout.ItemFilter) ([]*newsscout.NewsItem, error) {
	return s.FindItemsFn(ctx, filter)
}

func (s *ItemService) DeleteItemsByCompany(ctx context.Context, companyID string) error {
	return s.DeleteItemsByCompanyFn(ctx, companyID)
}

// ItemStore is a mock implementation of newsscout.ItemStore.
type ItemStore struct {
	SaveFn   func(ctx context.Context, item *newsscout.NewsItem) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ItemStore) Save(ctx context.Context, item *newsscout.NewsItem) error {
	return s.SaveFn(ctx, item)
}

func (s *ItemStore) Commit() error {
	return s.CommitFn()
}

func (s *ItemStore) Abort() error {
	return s.AbortFn()
}
