// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"fmt"
	"math"
	"time"

	"github.com/ava-labs/ratemeter/utils/timer/mockable"
)

// WarmupIntervals is the number of decay intervals that must separate the
// first and the latest observation before an averager reports WarmedUp.
const WarmupIntervals = 35

var _ Averager = (*decayAverager)(nil)

type decayAverager struct {
	clock *mockable.Clock

	// decay interval in nanoseconds
	tau float64

	average     float64
	birthstamp  time.Time
	lastUpdated time.Time
	initialized bool
}

// NewDecayAverager returns an averager whose samples decay with time
// constant [interval]. A nil [clock] reads real time.
//
// The first observation is taken as the average. Every later observation v
// made dt after the previous one updates the average to
//
//	alpha*v + (1-alpha)*average, where alpha = exp(-dt/interval)
//
// Reads decay the average further by the time elapsed since the last
// observation.
func NewDecayAverager(interval time.Duration, clock *mockable.Clock) (Averager, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	if clock == nil {
		clock = &mockable.Clock{}
	}
	return &decayAverager{
		clock: clock,
		tau:   float64(interval.Nanoseconds()),
	}, nil
}

func (a *decayAverager) Add(value float64) error {
	return a.AddAt(value, a.clock.Time())
}

func (a *decayAverager) AddAt(value float64, currentTime time.Time) error {
	if !a.initialized {
		a.average = value
		a.birthstamp = currentTime
		a.lastUpdated = currentTime
		a.initialized = true
		return nil
	}

	alpha, err := a.alpha(currentTime)
	if err != nil {
		return err
	}
	// The new sample, not the history, is weighted by alpha. Consumers depend
	// on this exact output.
	a.average = alpha*value + (1-alpha)*a.average
	a.lastUpdated = currentTime
	return nil
}

func (a *decayAverager) Get() (float64, error) {
	return a.GetAt(a.clock.Time())
}

func (a *decayAverager) GetAt(currentTime time.Time) (float64, error) {
	if !a.initialized {
		return 0, nil
	}
	alpha, err := a.alpha(currentTime)
	if err != nil {
		return 0, err
	}
	return alpha * a.average, nil
}

func (a *decayAverager) WarmedUp() bool {
	if !a.initialized {
		return false
	}
	elapsed := a.lastUpdated.Sub(a.birthstamp)
	return float64(elapsed.Nanoseconds()) >= WarmupIntervals*a.tau
}

// alpha returns the decay weight of the time elapsed since the last
// observation.
func (a *decayAverager) alpha(currentTime time.Time) (float64, error) {
	if currentTime.Before(a.lastUpdated) {
		return 0, fmt.Errorf("%w: %s is before %s",
			ErrTimeOrder,
			currentTime,
			a.lastUpdated,
		)
	}
	delta := currentTime.Sub(a.lastUpdated)
	return math.Exp(-float64(delta.Nanoseconds()) / a.tau), nil
}
