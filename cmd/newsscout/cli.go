package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Companies newsscout.CompanyService
	Items     newsscout.ItemService
	Scraper   *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	UserAgent   string        `name:"user-agent" env:"NEWSSCOUT_USER_AGENT" default:"${user_agent}" help:"User-Agent sent with every request"`
	Timeout     time.Duration `env:"NEWSSCOUT_TIMEOUT" default:"15s" help:"Timeout per request"`
	MaxRequests int           `name:"max-requests" default:"150" help:"Request budget per company"`
	RPS         float64       `name:"rps" default:"2" help:"Requests per second per host (0 disables)"`
	Headless    bool          `default:"true" negatable:"" help:"Render blocked and script-only pages in headless Chrome"`
	Extractor   string        `enum:"trafilatura,readability" default:"trafilatura" help:"Article content extractor (trafilatura, readability)"`
	DB          string        `name:"db" env:"NEWSSCOUT_DB" default:"${db}" help:"SQLite database path"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`

	Scan   ScanCmd   `cmd:"" help:"Scan a website and print the articles found"`
	Add    AddCmd    `cmd:"" help:"Register a company"`
	List   ListCmd   `cmd:"" help:"List registered companies"`
	Delete DeleteCmd `cmd:"" help:"Delete a company and its stored items"`
	Run    RunCmd    `cmd:"" help:"Scrape registered companies and store new items"`
	Items  ItemsCmd  `cmd:"" help:"List stored items for a company"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Website  string        `arg:"" help:"Company website URL"`
	Company  string        `help:"Company name (defaults to the website host)"`
	NewsPage string        `name:"news-page" help:"Listing page to scrape instead of probing common paths"`
	Max      int           `short:"n" default:"10" help:"Maximum number of articles"`
	Duration time.Duration `default:"2m" help:"Maximum scan duration (0 disables)"`
	JSON     bool          `name:"json" help:"Print the scan result as JSON"`
	Out      string        `type:"path" help:"Write articles as markdown files to this directory"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name     string `arg:"" help:"Company name"`
	Website  string `arg:"" help:"Company website URL"`
	NewsPage string `name:"news-page" help:"Company news or blog listing page"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Company name"`
	Force bool   `help:"Confirm deletion"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Max      int           `short:"n" default:"10" help:"Maximum number of articles per company"`
	File     string        `type:"existingfile" help:"YAML file of companies to register and scrape"`
	Duration time.Duration `default:"2m" help:"Maximum scrape duration per company (0 disables)"`
}

// ItemsCmd is the "items" subcommand.
type ItemsCmd struct {
	Name     string `arg:"" help:"Company name"`
	Limit    int    `short:"n" default:"20" help:"Maximum number of items"`
	Category string `help:"Only show items in this category"`
	JSON     bool   `name:"json" help:"Print items as JSON"`
}
