// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"sync"
	"time"
)

var _ Averager = (*syncAverager)(nil)

type syncAverager struct {
	lock     sync.RWMutex
	averager Averager
}

// NewSyncAverager serializes every call made to [averager].
func NewSyncAverager(averager Averager) Averager {
	return &syncAverager{
		averager: averager,
	}
}

func (a *syncAverager) Add(value float64) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.averager.Add(value)
}

func (a *syncAverager) AddAt(value float64, currentTime time.Time) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.averager.AddAt(value, currentTime)
}

func (a *syncAverager) Get() (float64, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.averager.Get()
}

func (a *syncAverager) GetAt(currentTime time.Time) (float64, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.averager.GetAt(currentTime)
}

func (a *syncAverager) WarmedUp() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.averager.WarmedUp()
}
