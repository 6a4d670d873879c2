package newsscout_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsscout"
	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestBudget_Consume(t *testing.T) {
	t.Parallel()

	t.Run("decrements by exactly one", func(t *testing.T) {
		t.Parallel()

		b := newsscout.NewBudget(2)

		assert.True(t, b.Consume())
		assert.Equal(t, 1, b.Remaining())
		assert.Equal(t, 1, b.Used())
	})

	t.Run("never goes below zero", func(t *testing.T) {
		t.Parallel()

		b := newsscout.NewBudget(3)
		prev := b.Remaining()
		for range 10 {
			b.Consume()
			assert.LessOrEqual(t, b.Remaining(), prev)
			assert.GreaterOrEqual(t, b.Remaining(), 0)
			prev = b.Remaining()
		}

		assert.Equal(t, 0, b.Remaining())
		assert.Equal(t, 3, b.Used())
		assert.False(t, b.Consume())
		assert.False(t, b.Allow())
	})

	t.Run("negative budget is empty", func(t *testing.T) {
		t.Parallel()

		b := newsscout.NewBudget(-5)
		assert.Equal(t, 0, b.Remaining())
		assert.False(t, b.Allow())
	})
}

func TestBudget_Deadline(t *testing.T) {
	t.Parallel()

	t.Run("no deadline means unbounded time", func(t *testing.T) {
		t.Parallel()

		b := newsscout.NewBudget(1)

		assert.False(t, b.DeadlineReached())
		_, ok := b.TimeRemaining()
		assert.False(t, ok)
		assert.Equal(t, 5*time.Second, b.EffectiveTimeout(5*time.Second))
	})

	t.Run("non-positive duration clears the deadline", func(t *testing.T) {
		t.Parallel()

		clock := newClock()
		b := newsscout.NewBudget(1, newsscout.WithClock(clock.Now))
		b.SetDeadline(time.Second)
		b.SetDeadline(0)

		clock.Advance(time.Hour)
		assert.False(t, b.DeadlineReached())
	})

	t.Run("effective timeout is bounded by time remaining", func(t *testing.T) {
		t.Parallel()

		clock := newClock()
		b := newsscout.NewBudget(10, newsscout.WithClock(clock.Now))
		b.SetDeadline(3 * time.Second)

		assert.Equal(t, 3*time.Second, b.EffectiveTimeout(10*time.Second))
		assert.Equal(t, time.Second, b.EffectiveTimeout(time.Second))

		clock.Advance(2 * time.Second)
		assert.Equal(t, time.Second, b.EffectiveTimeout(10*time.Second))
	})

	t.Run("effective timeout is zero once the deadline passed", func(t *testing.T) {
		t.Parallel()

		clock := newClock()
		b := newsscout.NewBudget(10, newsscout.WithClock(clock.Now))
		b.SetDeadline(time.Second)
		clock.Advance(time.Second)

		assert.True(t, b.DeadlineReached())
		assert.Equal(t, time.Duration(0), b.EffectiveTimeout(10*time.Second))
		assert.False(t, b.Allow())
	})

	t.Run("deadline reached is sticky", func(t *testing.T) {
		t.Parallel()

		clock := newClock()
		b := newsscout.NewBudget(10, newsscout.WithClock(clock.Now))
		b.SetDeadline(time.Second)
		clock.Advance(2 * time.Second)
		assert.True(t, b.DeadlineReached())

		// A clock stepping backwards must not revive the run.
		clock.Advance(-time.Hour)
		assert.True(t, b.DeadlineReached())
		remaining, ok := b.TimeRemaining()
		assert.True(t, ok)
		assert.Equal(t, time.Duration(0), remaining)
	})

	t.Run("clear deadline resets the run", func(t *testing.T) {
		t.Parallel()

		clock := newClock()
		b := newsscout.NewBudget(10, newsscout.WithClock(clock.Now))
		b.SetDeadline(time.Second)
		clock.Advance(2 * time.Second)
		assert.True(t, b.DeadlineReached())

		b.ClearDeadline()
		assert.False(t, b.DeadlineReached())
	})
}
