package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/newsscout"
)

// Run executes the items command.
func (c *ItemsCmd) Run(deps *Dependencies) error {
	company, err := findCompany(deps, c.Name)
	if err != nil {
		return err
	}

	filter := newsscout.ItemFilter{
		CompanyID: &company.ID,
		Limit:     c.Limit,
	}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	items, err := deps.Items.FindItems(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsscout.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if items == nil {
			items = []*newsscout.NewsItem{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintf(deps.Stdout, "No items stored for %s. Use 'newsscout run' to scrape it.\n", company.Name)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Items for %s (%d shown):\n\n", company.Name, len(items))
	for i, item := range items {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n     %s  %s\n",
			i+1, item.Title, truncateURL(item.SourceURL, 100),
			item.PublishedAt.Format("2006-01-02"), item.Category)
	}

	return nil
}
