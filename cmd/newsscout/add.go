package main

import (
	"fmt"

	"github.com/fwojciec/newsscout"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	company := &newsscout.Company{
		Name:        c.Name,
		Website:     c.Website,
		NewsPageURL: c.NewsPage,
	}

	if err := deps.Companies.CreateCompany(deps.Ctx, company); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added company %q (%s)\n", company.Name, company.ID)
	return nil
}
