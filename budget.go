package newsscout

import "time"

// DefaultRequestBudget is the number of network requests a single scrape
// run may perform when no explicit budget is configured.
const DefaultRequestBudget = 150

// Budget is the run context shared by every network operation of one scrape
// run. It tracks the remaining request count and an optional wall-clock
// deadline. A Budget belongs to exactly one run and is not safe for
// concurrent use.
type Budget struct {
	remaining int
	used      int
	deadline  time.Time
	expired   bool
	now       func() time.Time
}

// BudgetOption configures a Budget.
type BudgetOption func(*Budget)

// WithClock sets the time source used for deadline checks.
func WithClock(now func() time.Time) BudgetOption {
	return func(b *Budget) {
		b.now = now
	}
}

// NewBudget returns a Budget allowing the given number of requests and no
// deadline. Negative request counts are treated as zero.
func NewBudget(requests int, opts ...BudgetOption) *Budget {
	b := &Budget{
		remaining: max(requests, 0),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetDeadline sets the deadline to now + d. A non-positive d clears the
// deadline, leaving the run bounded only by its request count.
func (b *Budget) SetDeadline(d time.Duration) {
	if d <= 0 {
		b.ClearDeadline()
		return
	}
	b.deadline = b.now().Add(d)
	b.expired = false
}

// ClearDeadline removes the deadline.
func (b *Budget) ClearDeadline() {
	b.deadline = time.Time{}
	b.expired = false
}

// DeadlineReached reports whether the deadline has passed. Once it returns
// true it keeps returning true until the deadline is set or cleared again.
func (b *Budget) DeadlineReached() bool {
	if b.expired {
		return true
	}
	if b.deadline.IsZero() {
		return false
	}
	if !b.now().Before(b.deadline) {
		b.expired = true
	}
	return b.expired
}

// TimeRemaining returns the time left before the deadline. The bool result
// is false when no deadline is set.
func (b *Budget) TimeRemaining() (time.Duration, bool) {
	if b.deadline.IsZero() {
		return 0, false
	}
	if b.DeadlineReached() {
		return 0, true
	}
	return b.deadline.Sub(b.now()), true
}

// EffectiveTimeout returns min(base, time remaining), base when no deadline
// is set, or zero when the deadline has passed. Zero means the operation
// must be skipped.
func (b *Budget) EffectiveTimeout(base time.Duration) time.Duration {
	remaining, ok := b.TimeRemaining()
	if !ok {
		return base
	}
	if remaining <= 0 {
		return 0
	}
	return min(base, remaining)
}

// Remaining returns the number of requests still available.
func (b *Budget) Remaining() int {
	return b.remaining
}

// Used returns the number of requests consumed so far.
func (b *Budget) Used() int {
	return b.used
}

// Allow reports whether another request may be issued: the deadline has not
// passed and at least one request remains.
func (b *Budget) Allow() bool {
	return b.remaining > 0 && !b.DeadlineReached()
}

// Consume takes one request from the budget. It returns false, leaving the
// budget untouched, if no requests remain.
func (b *Budget) Consume() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	b.used++
	return true
}
