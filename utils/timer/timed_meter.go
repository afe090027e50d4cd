// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timer

import (
	"container/list"
	"sync"
	"time"

	"github.com/ava-labs/ratemeter/utils/timer/mockable"
)

var (
	_ Meter       = (*TimedMeter)(nil)
	_ Accumulator = (*TimedMeter)(nil)
)

// Meter counts recent events.
type Meter interface {
	Tick()
	// Ticks returns the number of events still tracked
	Ticks() int
}

// TimedMeter is a meter that discards events older than Duration. As an
// Accumulator it ticks once per reported measurement, ignoring the value.
type TimedMeter struct {
	lock sync.Mutex
	// Can be used to fake time in tests
	Clock *mockable.Clock
	// Amount of time to keep a tick
	Duration time.Duration

	tickList *list.List
}

func (tm *TimedMeter) Tick() {
	tm.lock.Lock()
	defer tm.lock.Unlock()

	tm.tick()
}

func (tm *TimedMeter) Ticks() int {
	tm.lock.Lock()
	defer tm.lock.Unlock()

	return tm.ticks()
}

func (tm *TimedMeter) Add(float64) error {
	tm.Tick()
	return nil
}

func (tm *TimedMeter) init() {
	if tm.tickList == nil {
		tm.tickList = list.New()
	}
	if tm.Clock == nil {
		tm.Clock = &mockable.Clock{}
	}
}

func (tm *TimedMeter) tick() {
	tm.init()
	now := tm.Clock.Time()
	tm.prune(now)
	tm.tickList.PushBack(now)
}

func (tm *TimedMeter) ticks() int {
	tm.init()
	tm.prune(tm.Clock.Time())
	return tm.tickList.Len()
}

// prune drops every tick at or before now - Duration.
func (tm *TimedMeter) prune(now time.Time) {
	bound := now.Add(-tm.Duration)
	for tm.tickList.Len() > 0 {
		head := tm.tickList.Front()
		if head.Value.(time.Time).After(bound) {
			return
		}
		tm.tickList.Remove(head)
	}
}
