// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import "time"

// Clock acts as a thin wrapper around global time that allows for easy testing.
//
// The zero value reads the real clock. Readings taken from the real clock keep
// Go's monotonic component, so durations between them are immune to wall
// clock steps.
//
// Clock is not safe for concurrent mutation.
type Clock struct {
	faked bool
	time  time.Time
}

// Set the time on the clock
func (c *Clock) Set(time time.Time) { c.faked = true; c.time = time }

// Sync this clock with global time
func (c *Clock) Sync() { c.faked = false }

// Advance moves the clock forward by [d]. A real clock is frozen at its
// current reading first.
func (c *Clock) Advance(d time.Duration) {
	if !c.faked {
		c.Set(time.Now())
	}
	c.time = c.time.Add(d)
}

// Faked returns true if the clock has been set to a fixed time.
func (c *Clock) Faked() bool { return c.faked }

// Time returns the time on this clock
func (c *Clock) Time() time.Time {
	if c.faked {
		return c.time
	}
	return time.Now()
}
