package newsscout

import (
	"context"
	"net/url"
	"time"
)

// Company is a company whose news is tracked.
type Company struct {
	ID          string    `json:"id" yaml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Website     string    `json:"website" yaml:"website"`
	NewsPageURL string    `json:"newsPageUrl,omitempty" yaml:"news_page_url,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"-"`
}

// Validate returns an error if the company contains invalid fields.
func (c *Company) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "company name required")
	}
	if c.Website == "" {
		return Errorf(EINVALID, "company website required")
	}
	u, err := url.Parse(c.Website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "company website must be an http(s) URL: %s", c.Website)
	}
	return nil
}

// CompanyService represents a service for managing companies.
type CompanyService interface {
	// CreateCompany creates a new company.
	// Returns ECONFLICT if a company with the same name exists.
	CreateCompany(ctx context.Context, company *Company) error

	// FindCompanyByID retrieves a company by ID.
	// Returns ENOTFOUND if company does not exist.
	FindCompanyByID(ctx context.Context, id string) (*Company, error)

	// FindCompanies retrieves companies matching the filter.
	FindCompanies(ctx context.Context, filter CompanyFilter) ([]*Company, error)

	// DeleteCompany permanently removes a company and all associated items.
	// Returns ENOTFOUND if company does not exist.
	DeleteCompany(ctx context.Context, id string) error
}

// CompanyFilter represents a filter for FindCompanies.
type CompanyFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
