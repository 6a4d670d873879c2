package scrape

import (
	"github.com/fwojciec/newsscout"
	"github.com/fwojciec/newsscout/bloom"
)

// listingPage is a queued listing URL and its distance from the bootstrap
// page.
type listingPage struct {
	URL   string
	Depth int
}

// Frontier is a FIFO queue of listing pages with visited-URL deduplication.
// URLs are normalized before they are checked, so variants differing only by
// fragment or trailing slash are visited once. It is not safe for
// concurrent use.
type Frontier struct {
	visited *bloom.Filter
	queue   []listingPage
}

// NewFrontier creates a Frontier that records visits in visited. Sharing a
// filter between frontiers keeps them from revisiting each other's pages.
func NewFrontier(visited *bloom.Filter) *Frontier {
	return &Frontier{visited: visited}
}

// Push queues rawURL at depth. It returns false if the URL was already
// visited or queued.
func (f *Frontier) Push(rawURL string, depth int) bool {
	u := newsscout.NormalizeURL(rawURL)
	if u == "" || f.visited.Visit(u) {
		return false
	}
	f.queue = append(f.queue, listingPage{URL: u, Depth: depth})
	return true
}

// Visit marks rawURL visited without queueing it. It returns false if the
// URL was already visited or queued.
func (f *Frontier) Visit(rawURL string) bool {
	u := newsscout.NormalizeURL(rawURL)
	return u != "" && !f.visited.Visit(u)
}

// Pop returns the oldest queued page. The bool result is false if the
// frontier is empty.
func (f *Frontier) Pop() (listingPage, bool) {
	if len(f.queue) == 0 {
		return listingPage{}, false
	}
	p := f.queue[0]
	f.queue = f.queue[1:]
	return p, true
}

// Len returns the number of queued pages.
func (f *Frontier) Len() int {
	return len(f.queue)
}
