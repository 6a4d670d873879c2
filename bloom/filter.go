// Package bloom provides the visited-URL set used when crawling listing
// pages.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic set of visited URLs. A false positive means a
// page is skipped; a URL is never visited twice.
type Filter struct {
	f     *bloom.BloomFilter
	count int
}

// NewFilter creates a new Bloom filter sized for n expected URLs with the
// given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit marks url as visited. It reports whether url had (probably) been
// visited before.
func (f *Filter) Visit(url string) bool {
	if f.f.TestAndAddString(url) {
		return true
	}
	f.count++
	return false
}

// Visited reports whether url might have been visited.
func (f *Filter) Visited(url string) bool {
	return f.f.TestString(url)
}

// Count returns the number of URLs marked as newly visited.
func (f *Filter) Count() int {
	return f.count
}
