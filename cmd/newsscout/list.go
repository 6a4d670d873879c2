package main

import (
	"fmt"

	"github.com/fwojciec/newsscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	companies, err := deps.Companies.FindCompanies(deps.Ctx, newsscout.CompanyFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsscout.ErrorMessage(err))
		return err
	}

	if len(companies) == 0 {
		fmt.Fprintln(deps.Stdout, "No companies found. Use 'newsscout add' to register one.")
		return nil
	}

	for _, c := range companies {
		if c.NewsPageURL != "" {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", c.ID, c.Name, c.Website, c.NewsPageURL)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", c.ID, c.Name, c.Website)
	}

	return nil
}
