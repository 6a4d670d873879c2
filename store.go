package newsscout

import "context"

// ItemStore persists news items to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ItemStore interface {
	Save(ctx context.Context, item *NewsItem) error
	Commit() error
	Abort() error
}
