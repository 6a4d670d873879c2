package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsscout"
)

var _ newsscout.ItemService = (*LoggingItemService)(nil)

// LoggingItemService wraps an ItemService and logs batch saves.
type LoggingItemService struct {
	newsscout.ItemService
	logger *slog.Logger
}

// NewLoggingItemService creates a new LoggingItemService.
func NewLoggingItemService(next newsscout.ItemService, logger *slog.Logger) *LoggingItemService {
	return &LoggingItemService{ItemService: next, logger: logger}
}

// SaveItems delegates to the wrapped service and logs how many rows were new.
func (s *LoggingItemService) SaveItems(ctx context.Context, companyID string, items []*newsscout.NewsItem) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save items",
			"company", companyID,
			"items", len(items),
			"inserted", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.ItemService.SaveItems(ctx, companyID, items)
}
