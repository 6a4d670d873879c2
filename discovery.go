package newsscout

// Discovery is the outcome of running one discovery strategy against a page:
// the candidates it produced, how many came from each strategy tag, and the
// number of requests it consumed.
type Discovery struct {
	Candidates []*Candidate
	Metrics    map[string]int
	Requests   int
}

// Add records a candidate under its strategy tag. Nil candidates are ignored.
func (d *Discovery) Add(cs ...*Candidate) {
	for _, c := range cs {
		if c == nil {
			continue
		}
		if d.Metrics == nil {
			d.Metrics = make(map[string]int)
		}
		d.Candidates = append(d.Candidates, c)
		d.Metrics[c.Strategy]++
	}
}

// Extend folds other into d.
func (d *Discovery) Extend(other *Discovery) {
	if other == nil {
		return
	}
	d.Add(other.Candidates...)
	d.Requests += other.Requests
}

// Len returns the number of candidates recorded.
func (d *Discovery) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Candidates)
}
