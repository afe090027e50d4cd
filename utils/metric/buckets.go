// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import "time"

// NanosecondsBuckets are histogram buckets for durations reported by a
// timer.Timer, which measures in nanoseconds.
var NanosecondsBuckets = []float64{
	float64(100 * time.Microsecond),
	float64(time.Millisecond),
	float64(10 * time.Millisecond),
	float64(100 * time.Millisecond), // instant
	float64(250 * time.Millisecond), // good
	float64(500 * time.Millisecond), // not great
	float64(time.Second),            // worrisome
	float64(5 * time.Second),        // bad
	// anything larger than 5 seconds will be bucketed together
}

// MillisecondsBuckets are NanosecondsBuckets for durations reported in
// milliseconds.
var MillisecondsBuckets = []float64{
	0.1,
	1,
	10,
	100,
	250,
	500,
	1_000,
	5_000,
}
