// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timer

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/timer/mockable"
)

// Accumulator receives elapsed durations, in nanoseconds.
type Accumulator interface {
	Add(value float64) error
}

// AccumulatorFunc adapts a function to the Accumulator interface.
type AccumulatorFunc func(value float64) error

func (f AccumulatorFunc) Add(value float64) error { return f(value) }

type Option func(*Timer)

// WithClock replaces the real clock.
func WithClock(clock *mockable.Clock) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithLogger sets the logger used to report accumulator failures that can't
// be returned to the caller.
func WithLogger(log logging.Logger) Option {
	return func(t *Timer) {
		t.log = log
	}
}

// Timer measures the duration of scopes and reports each one to its owner.
//
// The owner is borrowed and must outlive every context started by the timer.
// A Timer may be shared between goroutines only if the owner is safe for
// concurrent use.
type Timer struct {
	owner Accumulator
	clock *mockable.Clock
	log   logging.Logger

	count atomic.Uint64
}

func NewTimer(owner Accumulator, opts ...Option) *Timer {
	t := &Timer{
		owner: owner,
		clock: &mockable.Clock{},
		log:   logging.NoLog{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start captures the current time and returns the pending measurement.
// The returned context must be stopped, typically with defer.
func (t *Timer) Start() *Context {
	return &Context{
		m: &measurement{
			timer: t,
			start: t.clock.Time(),
		},
	}
}

// Count returns the number of measurements reported to the owner.
func (t *Timer) Count() uint64 {
	return t.count.Load()
}

// Measure runs [f] and reports its duration once [f] returns or panics.
// The error of [f] is returned unchanged.
func (t *Timer) Measure(f func() error) error {
	ctx := t.Start()
	defer t.stopAndLog(ctx)

	return f()
}

// MeasureValue is Measure for functions that produce a value.
func MeasureValue[T any](t *Timer, f func() (T, error)) (T, error) {
	ctx := t.Start()
	defer t.stopAndLog(ctx)

	return f()
}

func (t *Timer) stopAndLog(ctx *Context) {
	if err := ctx.Stop(); err != nil {
		t.log.Debug("failed to report measurement",
			zap.Duration("elapsed", ctx.Elapsed()),
			zap.Error(err),
		)
	}
}

// noCopy is flagged by go vet's copylocks check when embedded in a copied
// struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Context is a single pending measurement. It must not be copied; copies
// share the measurement and only one of them ever reports.
//
// A context is Active until Stop or Transfer is called, after which it is
// Reported and every further call is a no-op.
type Context struct {
	_ noCopy

	m *measurement
}

type measurement struct {
	timer    *Timer
	start    time.Time
	elapsed  time.Duration
	stopped  bool
	reported bool
}

// Stop reports the time elapsed since the context started to the timer's
// owner and returns the owner's error. Only the first call reports.
func (c *Context) Stop() error {
	m := c.m
	if m.reported {
		return nil
	}
	m.reported = true
	m.stopped = true

	m.elapsed = m.timer.clock.Time().Sub(m.start)
	err := m.timer.owner.Add(float64(m.elapsed))
	m.timer.count.Add(1)
	return err
}

// Transfer moves the pending measurement into a new context. The receiver
// becomes inert and will never report.
func (c *Context) Transfer() *Context {
	moved := &Context{
		m: &measurement{
			timer:    c.m.timer,
			start:    c.m.start,
			reported: c.m.reported,
		},
	}
	c.m.reported = true
	return moved
}

// Active returns true if the context has yet to report.
func (c *Context) Active() bool {
	return !c.m.reported
}

// Elapsed returns the time since the context started, or the reported
// duration once the context has been stopped.
func (c *Context) Elapsed() time.Duration {
	if c.m.stopped {
		return c.m.elapsed
	}
	return c.m.timer.clock.Time().Sub(c.m.start)
}
