package testutil

import "sync"

// DeterministicClock is a resettable logical clock for tests.
// It satisfies engine.SeqSource.
//
// Two scenario runs that share nothing but a fresh DeterministicClock stamp
// their records with identical seq values, which keeps golden traces stable.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// NewDeterministicClockAt creates a clock positioned at start, as if start
// records had already been stamped.
func NewDeterministicClockAt(start int64) *DeterministicClock {
	return &DeterministicClock{seq: start}
}

// Next advances the clock and returns the new seq.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last issued seq without advancing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to 0.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
