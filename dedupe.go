package newsscout

// Dedupe collapses candidates whose identity sets intersect into a single
// merged candidate. Invalid candidates are dropped. The first-seen
// candidate of each group keeps its position and its scalar values.
func Dedupe(candidates []*Candidate) []*Candidate {
	pool := NewCandidatePool()
	for _, c := range candidates {
		pool.Add(c)
	}
	return pool.Candidates()
}

// CandidatePool accumulates candidates across strategies, dropping invalid
// ones and merging duplicates as they arrive.
type CandidatePool struct {
	entries []*Candidate
	index   map[string]int
	size    int
}

// NewCandidatePool returns an empty pool.
func NewCandidatePool() *CandidatePool {
	return &CandidatePool{index: make(map[string]int)}
}

// Add accepts a candidate into the pool. It returns false if the candidate
// was rejected or merged into an existing entry, and true if it was
// registered as a new article. The pool stores a copy; c is not modified.
func (p *CandidatePool) Add(c *Candidate) bool {
	if c == nil || !c.Valid() {
		return false
	}

	// Collect every existing entry sharing an identity with c.
	target := -1
	var matches []int
	for _, key := range c.IdentitySet() {
		i, ok := p.index[key]
		if !ok || containsInt(matches, i) {
			continue
		}
		matches = append(matches, i)
		if target == -1 || i < target {
			target = i
		}
	}

	if target == -1 {
		entry := c.Clone()
		p.entries = append(p.entries, entry)
		p.size++
		p.reindex(len(p.entries) - 1)
		return true
	}

	entry := p.entries[target]
	entry.Merge(c)

	// c may bridge two previously distinct entries; fold the later ones
	// into the earliest so no two entries share an identity.
	for _, i := range matches {
		if i == target {
			continue
		}
		entry.Merge(p.entries[i])
		p.entries[i] = nil
		p.size--
	}
	p.reindex(target)
	return false
}

// Len returns the number of distinct articles in the pool.
func (p *CandidatePool) Len() int {
	return p.size
}

// Candidates returns the pooled candidates in first-seen order.
func (p *CandidatePool) Candidates() []*Candidate {
	out := make([]*Candidate, 0, p.size)
	for _, c := range p.entries {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (p *CandidatePool) reindex(i int) {
	for _, key := range p.entries[i].IdentitySet() {
		p.index[key] = i
	}
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
