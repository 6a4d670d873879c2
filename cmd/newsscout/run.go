package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/scrape"
	"gopkg.in/yaml.v3"
)

// companiesFile is the layout of the --file YAML document.
type companiesFile struct {
	Companies []newsscout.Company `yaml:"companies"`
}

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	if c.Max <= 0 {
		fmt.Fprintf(deps.Stderr, "error: --max must be positive\n")
		return newsscout.Errorf(newsscout.EINVALID, "--max must be positive")
	}

	var companies []*newsscout.Company
	var err error
	if c.File != "" {
		companies, err = c.registerFile(deps)
	} else {
		companies, err = deps.Companies.FindCompanies(deps.Ctx, newsscout.CompanyFilter{})
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsscout.ErrorMessage(err))
		return err
	}

	if len(companies) == 0 {
		fmt.Fprintln(deps.Stdout, "No companies to scrape. Use 'newsscout add' or --file to register some.")
		return nil
	}

	failed := 0
	for _, company := range companies {
		if deps.Ctx.Err() != nil {
			break
		}

		preview := deps.Scraper.Scan(deps.Ctx, scrape.ScrapeRequest{
			CompanyName: company.Name,
			Website:     company.Website,
			NewsPageURL: company.NewsPageURL,
			MaxArticles: c.Max,
			MaxDuration: c.Duration,
		})

		saved, err := deps.Items.SaveItems(deps.Ctx, company.ID, preview.Items)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  %s: error saving items: %s\n", company.Name, newsscout.ErrorMessage(err))
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s: %d found, %d new (%d requests, %s)\n",
			company.Name, len(preview.Items), saved, preview.Requests, formatDuration(preview.Duration))
	}

	if err := deps.Ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return newsscout.Errorf(newsscout.EINTERNAL, "%d of %d companies failed", failed, len(companies))
	}
	return nil
}

// registerFile stores every company in the YAML file that is not yet
// registered and returns the file's companies as stored. Entries without a
// name or website are skipped.
func (c *RunCmd) registerFile(deps *Dependencies) ([]*newsscout.Company, error) {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, err
	}

	var file companiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, newsscout.Errorf(newsscout.EINVALID, "parsing %s: %v", c.File, err)
	}

	var companies []*newsscout.Company
	for _, entry := range file.Companies {
		company := &newsscout.Company{
			Name:        entry.Name,
			Website:     entry.Website,
			NewsPageURL: entry.NewsPageURL,
		}

		err := deps.Companies.CreateCompany(deps.Ctx, company)
		switch newsscout.ErrorCode(err) {
		case "":
			fmt.Fprintf(deps.Stdout, "Added company %q\n", company.Name)
		case newsscout.ECONFLICT:
			existing, err := deps.Companies.FindCompanies(deps.Ctx, newsscout.CompanyFilter{Name: &company.Name})
			if err != nil {
				return nil, err
			}
			if len(existing) == 0 {
				continue
			}
			company = existing[0]
		case newsscout.EINVALID:
			fmt.Fprintf(deps.Stderr, "  skip %q: %s\n", entry.Name, newsscout.ErrorMessage(err))
			continue
		default:
			return nil, err
		}

		companies = append(companies, company)
	}

	return companies, nil
}
