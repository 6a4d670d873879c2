package mock

import (
	"context"

	"github.com/fwojciec/newsscout"
)

var _ newsscout.CompanyService = (*CompanyService)(nil)

// CompanyService is a mock implementation of newsscout.CompanyService.
type CompanyService struct {
	CreateCompanyFn   func(ctx context.Context, company *newsscout.Company) error
	FindCompanyByIDFn func(ctx context.Context, id string) (*newsscout.Company, error)
	FindCompaniesFn   func(ctx context.Context, filter newsscout.CompanyFilter) ([]*newsscout.Company, error)
	DeleteCompanyFn   func(ctx context.Context, id string) error
}

func (s *CompanyService) CreateCompany(ctx context.Context, company *newsscout.Company) error {
	return s.CreateCompanyFn(ctx, company)
}

func (s *CompanyService) FindCompanyByID(ctx context.Context, id string) (*newsscout.Company, error) {
	return s.FindCompanyByIDFn(ctx, id)
}

func (s *CompanyService) FindCompanies(ctx context.Context, filter newsscout.CompanyFilter) ([]*newsscout.Company, error) {
	return s.FindCompaniesFn(ctx, filter)
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	return s.DeleteCompanyFn(ctx, id)
}
