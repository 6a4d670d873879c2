package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsscout.CompanyService = (*CompanyService)(nil)

// CompanyService implements newsscout.CompanyService using SQLite.
type CompanyService struct {
	db *DB
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(db *DB) *CompanyService {
	return &CompanyService{db: db}
}

// CreateCompany creates a new company.
func (s *CompanyService) CreateCompany(ctx context.Context, company *newsscout.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	id := uuid.New().String()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, website, news_page_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, id, company.Name, company.Website, company.NewsPageURL,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return newsscout.Errorf(newsscout.ECONFLICT, "company already exists: %s", company.Name)
	}

	company.ID = id
	company.CreatedAt = now
	company.UpdatedAt = now
	return nil
}

// FindCompanyByID retrieves a company by ID.
func (s *CompanyService) FindCompanyByID(ctx context.Context, id string) (*newsscout.Company, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, website, news_page_url, created_at, updated_at
		FROM companies
		WHERE id = ?
	`, id)

	company, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, newsscout.Errorf(newsscout.ENOTFOUND, "company not found")
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// FindCompanies retrieves companies matching the filter, ordered by name.
func (s *CompanyService) FindCompanies(ctx context.Context, filter newsscout.CompanyFilter) ([]*newsscout.Company, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, website, news_page_url, created_at, updated_at FROM companies WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*newsscout.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

// DeleteCompany permanently removes a company. Its items are removed by
// the cascading foreign key.
func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return newsscout.Errorf(newsscout.ENOTFOUND, "company not found")
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*newsscout.Company, error) {
	var company newsscout.Company
	var createdAt, updatedAt string

	if err := row.Scan(&company.ID, &company.Name, &company.Website, &company.NewsPageURL,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if company.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if company.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &company, nil
}
