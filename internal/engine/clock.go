package engine

import "sync/atomic"

// SeqSource stamps evaluations and outcomes with a logical sequence number.
// Implemented by Clock and by testutil.DeterministicClock.
type SeqSource interface {
	Next() int64
	Current() int64
}

// Clock is a monotonic logical clock. Ordering in the evaluation log uses
// these numbers, never wall time, so a replayed run sorts identically.
//
// Clock is safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned at start.
// Used to append to an existing run after store.GetLastSeq.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
