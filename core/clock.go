package core

import "time"

// Clock abstracts wall time so the scheduler's pass loop (spec §4.6) can
// be driven deterministically in tests without real sleeps, adapted from
// the teacher's core/clock.go but stripped of the cron-library wiring
// that package needed and this one has no use for.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

// NewRealClock returns the Clock implementation used in production.
func NewRealClock() Clock { return realClock{} }

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// FakeClock is a manually-advanced Clock for deterministic scheduler
// tests (spec §8's "two consecutive update passes ... clocks advanced by
// exactly freq seconds").
type FakeClock struct {
	now time.Time
}

// NewFakeClock returns a FakeClock starting at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (c *FakeClock) Now() time.Time { return c.now }

// Sleep advances the fake clock by d instead of blocking.
func (c *FakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// Advance moves the fake clock forward by d without going through Sleep,
// for tests that want to simulate time passing between scheduler passes.
func (c *FakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
