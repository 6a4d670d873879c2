package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/fs"
	"github.com/fwojciec/newsscout/scrape"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	if c.Max <= 0 {
		fmt.Fprintf(deps.Stderr, "error: --max must be positive\n")
		return newsscout.Errorf(newsscout.EINVALID, "--max must be positive")
	}

	name := c.Company
	if name == "" {
		name = hostName(c.Website)
	}

	preview := deps.Scraper.Scan(deps.Ctx, scrape.ScrapeRequest{
		CompanyName: name,
		Website:     c.Website,
		NewsPageURL: c.NewsPage,
		MaxArticles: c.Max,
		MaxDuration: c.Duration,
	})

	if c.Out != "" {
		if err := writeItems(deps.Ctx, c.Out, preview.Items); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing %s: %s\n", c.Out, newsscout.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(preview)
	}

	printPreview(deps.Stdout, preview)
	if c.Out != "" && len(preview.Items) > 0 {
		fmt.Fprintf(deps.Stdout, "\nWrote %d files to %s\n", len(preview.Items), c.Out)
	}
	return nil
}

// writeItems replaces dir with one markdown file per item.
func writeItems(ctx context.Context, dir string, items []*newsscout.NewsItem) error {
	dir = filepath.Clean(dir)
	store := fs.NewItemStore(filepath.Dir(dir), filepath.Base(dir))
	for _, item := range items {
		if err := store.Save(ctx, item); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}

func printPreview(w io.Writer, p *scrape.Preview) {
	if len(p.Items) == 0 {
		fmt.Fprintf(w, "No articles found (%d requests, %s)\n", p.Requests, formatDuration(p.Duration))
		if len(p.Bootstrap) > 0 {
			fmt.Fprintf(w, "Tried: %s\n", strings.Join(p.Bootstrap, ", "))
		}
		return
	}

	fmt.Fprintf(w, "Found %d articles (%d requests, %s)\n", len(p.Items), p.Requests, formatDuration(p.Duration))
	fmt.Fprintf(w, "  %s\n\n", formatMetrics(p.Metrics))
	for i, item := range p.Items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item.Title)
		fmt.Fprintf(w, "     %s\n", truncateURL(item.SourceURL, 100))
		fmt.Fprintf(w, "     %s  %s  %s\n", item.PublishedAt.Format("2006-01-02"), item.Category, item.Strategy)
	}
}

// formatMetrics renders strategy counts in a stable order.
func formatMetrics(metrics map[string]int) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %d", k, metrics[k])
	}
	return strings.Join(parts, "  ")
}

// hostName derives a company name from a website when none is given.
func hostName(website string) string {
	raw := website
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return website
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
