package scrape

import (
	"context"

	"github.com/fwojciec/newsscout"
)

// Crawl bounds for listing pagination.
const (
	maxPaginationDepth  = 5
	maxCategoryBranches = 5
)

// crawlListings extracts article links from page and follows its pagination
// and category links breadth first.
func (r *run) crawlListings(ctx context.Context, page *newsscout.Page) *newsscout.Discovery {
	d := &newsscout.Discovery{}
	start := r.budget.Used()
	defer func() { d.Requests = r.budget.Used() - start }()

	if r.s.Articles == nil {
		return d
	}

	frontier := NewFrontier(r.visited)
	d.Add(r.extractArticles(page)...)
	// An earlier crawl that reached page has already queued its links.
	if frontier.Visit(page.URL) {
		r.enqueueListings(frontier, page, 1)
	}

	for {
		next, ok := frontier.Pop()
		if !ok || r.full(d) || !r.budget.Allow() {
			break
		}
		resp, ok := r.s.fetch(ctx, r.budget, next.URL)
		if !ok {
			continue
		}
		current := &newsscout.Page{URL: resp.URL, HTML: resp.Body}
		d.Add(r.extractArticles(current)...)

		if next.Depth < maxPaginationDepth {
			r.enqueueListings(frontier, current, next.Depth+1)
		}
	}
	return d
}

func (r *run) extractArticles(page *newsscout.Page) []*newsscout.Candidate {
	candidates, err := r.s.Articles.ExtractArticles(page.HTML, page.URL)
	if err != nil {
		r.log.Debug("extract articles", "url", page.URL, "err", err)
	}
	return candidates
}

// enqueueListings queues the pagination and category links of page.
func (r *run) enqueueListings(frontier *Frontier, page *newsscout.Page, depth int) {
	if r.s.Links == nil {
		return
	}
	links, err := r.s.Links.DiscoverLinks(page.HTML, page.URL)
	if err != nil {
		r.log.Debug("discover links", "url", page.URL, "err", err)
		return
	}
	for _, u := range links.Next {
		if newsscout.SameSite(u, page.URL) {
			frontier.Push(u, depth)
		}
	}
	for _, u := range links.Categories {
		if r.branches >= maxCategoryBranches {
			break
		}
		if newsscout.SameSite(u, page.URL) && frontier.Push(u, depth) {
			r.branches++
		}
	}
}
