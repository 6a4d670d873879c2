package main

import (
	"fmt"

	"github.com/fwojciec/newsscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return newsscout.Errorf(newsscout.EINVALID, "use --force to confirm deletion")
	}

	company, err := findCompany(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Companies.DeleteCompany(deps.Ctx, company.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted company %q\n", company.Name)
	return nil
}

// findCompany looks a company up by name, reporting a missing one on stderr.
func findCompany(deps *Dependencies, name string) (*newsscout.Company, error) {
	companies, err := deps.Companies.FindCompanies(deps.Ctx, newsscout.CompanyFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsscout.ErrorMessage(err))
		return nil, err
	}

	if len(companies) == 0 {
		fmt.Fprintf(deps.Stderr, "error: company %q not found. Use 'newsscout list' to see registered companies.\n", name)
		return nil, newsscout.Errorf(newsscout.ENOTFOUND, "company %q not found", name)
	}

	return companies[0], nil
}
