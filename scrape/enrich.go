package scrape

import (
	"context"

	"github.com/fwojciec/newsscout"
)

// enrich fetches the article page of c and fills in what the listing did
// not provide. The candidate is returned unchanged when the budget is spent
// or the page cannot be fetched; the fetch is charged either way.
func (r *run) enrich(ctx context.Context, c *newsscout.Candidate) *newsscout.Candidate {
	out := c.Clone()
	if !r.budget.Allow() {
		return out
	}

	resp, ok := r.s.fetch(ctx, r.budget, c.URL)
	if !ok {
		return out
	}

	if r.s.Metadata != nil {
		meta, err := r.s.Metadata.ExtractMetadata(resp.Body, resp.URL)
		if err != nil {
			r.log.Debug("extract metadata", "url", resp.URL, "err", err)
		} else {
			applyMetadata(out, meta)
		}
	}
	r.extractContent(out, resp)
	return out
}

// applyMetadata merges article page metadata into c.
func applyMetadata(c *newsscout.Candidate, meta *newsscout.PageMetadata) {
	if c.CanonicalURL == "" {
		c.CanonicalURL = meta.Canonical
	}
	if c.OGURL == "" {
		c.OGURL = meta.OGURL
	}
	if title := newsscout.CleanTitle(meta.OGTitle); newsscout.ValidTitle(title) {
		c.Title = title
	}
	if c.Summary == "" {
		c.Summary = meta.OGDescription
	}
	c.AddAuthors(meta.Authors...)
	if c.PublishedAt == nil && meta.PublishedAt != nil {
		t := *meta.PublishedAt
		c.PublishedAt = &t
	}
	c.AddTags(meta.Tags...)
	c.AddCategories(meta.Sections...)

	for _, a := range meta.Articles {
		if len(meta.Articles) == 1 || sharesIdentity(c, a) {
			c.Merge(a)
		}
	}
}

// extractContent fills the markdown body and any missing authors or
// publication time from the main-content extractor.
func (r *run) extractContent(c *newsscout.Candidate, resp *newsscout.Response) {
	if r.s.Extractor == nil {
		return
	}
	result, err := r.s.Extractor.Extract(resp.Body, resp.URL)
	if err != nil {
		r.log.Debug("extract content", "url", resp.URL, "err", err)
		return
	}

	if len(c.Authors) == 0 {
		c.AddAuthors(result.Authors...)
	}
	if c.PublishedAt == nil && result.PublishedAt != nil {
		t := *result.PublishedAt
		c.PublishedAt = &t
	}

	if r.s.Converter == nil || result.ContentHTML == "" {
		return
	}
	md, err := r.s.Converter.Convert(result.ContentHTML, resp.URL)
	if err != nil {
		r.log.Debug("convert content", "url", resp.URL, "err", err)
		return
	}
	c.Content = md
}

func sharesIdentity(a, b *newsscout.Candidate) bool {
	ids := make(map[string]bool)
	for _, id := range a.IdentitySet() {
		ids[id] = true
	}
	for _, id := range b.IdentitySet() {
		if ids[id] {
			return true
		}
	}
	return false
}
