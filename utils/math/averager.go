// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("decay interval must be positive")
	ErrTimeOrder       = errors.New("time must monotonically increase")
)

// Averager tracks a continuous time exponentially decaying average of the
// provided values.
//
// Implementations are not required to be safe for concurrent use. Wrap with
// NewSyncAverager when an instance is shared between goroutines.
type Averager interface {
	// Add observes [value] at the current time of the averager's clock.
	Add(value float64) error

	// AddAt observes [value] at [currentTime]. Returns ErrTimeOrder, leaving
	// the average untouched, if [currentTime] is before the last observation.
	AddAt(value float64, currentTime time.Time) error

	// Get returns the average decayed to the current time of the averager's
	// clock.
	Get() (float64, error)

	// GetAt returns the average decayed to [currentTime]. Before the first
	// observation this is 0.
	GetAt(currentTime time.Time) (float64, error)

	// WarmedUp returns true once the observations span enough time for the
	// average to be considered stable.
	WarmedUp() bool
}
