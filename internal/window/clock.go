package window

import "sync/atomic"

// Clock stamps frames with their arrival order.
//
// Arrival order is authoritative for session and timestamp groups, so every
// pushed frame gets a strictly increasing seq. Clock is safe for concurrent
// use, though a Window normally has a single writer.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming after start.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next arrival seq.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued seq without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
