package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsscout.ItemService = (*ItemService)(nil)

// ItemService implements newsscout.ItemService using SQLite.
type ItemService struct {
	db *DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db}
}

const insertItem = `
	INSERT INTO news_items (id, company_id, title, content, summary, source_url, source_type,
		company_name, category, published_at, authors, tags, strategy, content_hash, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(source_url) DO NOTHING
`

// execer is satisfied by both *DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateItem creates a new item.
func (s *ItemService) CreateItem(ctx context.Context, item *newsscout.NewsItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	inserted, err := insert(ctx, s.db, item)
	if err != nil {
		return err
	}
	if !inserted {
		return newsscout.Errorf(newsscout.ECONFLICT, "news item already exists: %s", item.SourceURL)
	}
	return nil
}

// SaveItems stores items for a company in one transaction, skipping items
// whose source URL is already stored.
func (s *ItemService) SaveItems(ctx context.Context, companyID string, items []*newsscout.NewsItem) (int, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	saved := 0
	for _, item := range items {
		item.CompanyID = companyID
		inserted, err := insert(ctx, tx, item)
		if err != nil {
			return 0, fmt.Errorf("saving %s: %w", item.SourceURL, err)
		}
		if inserted {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return saved, nil
}

// insert writes one item and reports whether a row was created. ID,
// CreatedAt and ContentHash are only assigned when it was.
func insert(ctx context.Context, db execer, item *newsscout.NewsItem) (bool, error) {
	authors, err := encodeList(item.Authors)
	if err != nil {
		return false, err
	}
	tags, err := encodeList(item.Tags)
	if err != nil {
		return false, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	hash := hashContent(item.Content)

	var companyID sql.NullString
	if item.CompanyID != "" {
		companyID = sql.NullString{String: item.CompanyID, Valid: true}
	}

	result, err := db.ExecContext(ctx, insertItem,
		id, companyID, item.Title, item.Content, item.Summary, item.SourceURL, item.SourceType,
		item.CompanyName, item.Category, item.PublishedAt.UTC().Format(time.RFC3339),
		authors, tags, item.Strategy, hash, now.Format(time.RFC3339))
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	item.ID = id
	item.ContentHash = hash
	item.CreatedAt = &now
	return true, nil
}

// FindItems retrieves items matching the filter, newest first.
func (s *ItemService) FindItems(ctx context.Context, filter newsscout.ItemFilter) ([]*newsscout.NewsItem, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, company_id, title, content, summary, source_url, source_type,
		company_name, category, published_at, authors, tags, strategy, content_hash, created_at
		FROM news_items WHERE 1=1`)

	if filter.CompanyID != nil {
		query.WriteString(" AND company_id = ?")
		args = append(args, *filter.CompanyID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}

	query.WriteString(" ORDER BY published_at DESC, source_url")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*newsscout.NewsItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// DeleteItemsByCompany removes all items for a company.
func (s *ItemService) DeleteItemsByCompany(ctx context.Context, companyID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM news_items WHERE company_id = ?", companyID)
	return err
}

func scanItem(row scanner) (*newsscout.NewsItem, error) {
	var item newsscout.NewsItem
	var companyID sql.NullString
	var publishedAt, authors, tags, createdAt string

	if err := row.Scan(&item.ID, &companyID, &item.Title, &item.Content, &item.Summary,
		&item.SourceURL, &item.SourceType, &item.CompanyName, &item.Category, &publishedAt,
		&authors, &tags, &item.Strategy, &item.ContentHash, &createdAt); err != nil {
		return nil, err
	}
	item.CompanyID = companyID.String

	var err error
	if item.PublishedAt, err = parseRFC3339(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	created, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	item.CreatedAt = &created
	if item.Authors, err = decodeList(authors, "authors"); err != nil {
		return nil, err
	}
	if item.Tags, err = decodeList(tags, "tags"); err != nil {
		return nil, err
	}

	return &item, nil
}
