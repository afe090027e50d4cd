// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/math"
	"github.com/ava-labs/ratemeter/utils/timer"
	"github.com/ava-labs/ratemeter/utils/timer/mockable"
	"github.com/ava-labs/ratemeter/utils/wrappers"
)

var _ Rate = (*rate)(nil)

// Rate is a decaying average exported as a prometheus gauge. Rates are safe
// for concurrent use.
type Rate interface {
	timer.Accumulator

	// AddAt observes [value] at [currentTime].
	AddAt(value float64, currentTime time.Time) error

	// Read returns the average decayed to now. Read errors are logged and
	// read as 0.
	Read() float64

	WarmedUp() bool
}

type RateOption func(*rateConfig)

type rateConfig struct {
	clock        *mockable.Clock
	warmupGating bool
}

// WithClock replaces the real clock of the rate's averager.
func WithClock(clock *mockable.Clock) RateOption {
	return func(c *rateConfig) {
		c.clock = clock
	}
}

// WithWarmupGating makes the exported value read 0 until the average has
// warmed up.
func WithWarmupGating(enabled bool) RateOption {
	return func(c *rateConfig) {
		c.warmupGating = enabled
	}
}

type rate struct {
	name string
	log  logging.Logger

	averager math.Averager
	// averager, hidden behind a warm up gate if configured
	reads math.Averager

	rejected prometheus.Counter
}

// NewRate registers the metrics of a rate that decays with time constant
// [interval]:
//
//   - <namespace>_<name>: the decayed average at collection time
//   - <namespace>_<name>_warmed_up: 1 once the average is stable, else 0
//   - <namespace>_<name>_rejected: samples refused for arriving out of order
func NewRate(
	namespace,
	name,
	help string,
	interval time.Duration,
	log logging.Logger,
	reg prometheus.Registerer,
	opts ...RateOption,
) (Rate, error) {
	errs := wrappers.Errs{}
	r := newRate(namespace, name, help, interval, log, reg, &errs, opts...)
	if r == nil {
		return nil, errs.Err
	}
	return r, errs.Err
}

// NewRateWithErrs is NewRate for batch registration. The first error is
// recorded in [errs]. If [interval] is invalid, nil is returned.
func NewRateWithErrs(
	namespace,
	name,
	help string,
	interval time.Duration,
	log logging.Logger,
	reg prometheus.Registerer,
	errs *wrappers.Errs,
	opts ...RateOption,
) Rate {
	r := newRate(namespace, name, help, interval, log, reg, errs, opts...)
	if r == nil {
		return nil
	}
	return r
}

func newRate(
	namespace,
	name,
	help string,
	interval time.Duration,
	log logging.Logger,
	reg prometheus.Registerer,
	errs *wrappers.Errs,
	opts ...RateOption,
) *rate {
	config := rateConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	averager, err := math.NewDecayAverager(interval, config.clock)
	if err != nil {
		errs.Add(err)
		return nil
	}
	averager = math.NewSyncAverager(averager)

	r := &rate{
		name:     name,
		log:      log,
		averager: averager,
		reads:    averager,
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_rejected",
			Help:      "Number of samples rejected because they arrived out of order",
		}),
	}
	if config.warmupGating {
		r.reads = math.NewMaturedAverager(averager)
	}

	value := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		r.Read,
	)
	warmedUp := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name + "_warmed_up",
			Help:      "1 if the average of " + name + " has warmed up, 0 otherwise",
		},
		func() float64 {
			if r.WarmedUp() {
				return 1
			}
			return 0
		},
	)
	errs.Add(
		reg.Register(value),
		reg.Register(warmedUp),
		reg.Register(r.rejected),
	)
	return r
}

func (r *rate) Add(value float64) error {
	return r.observed(value, r.averager.Add(value))
}

func (r *rate) AddAt(value float64, currentTime time.Time) error {
	return r.observed(value, r.averager.AddAt(value, currentTime))
}

func (r *rate) observed(value float64, err error) error {
	if err == nil {
		return nil
	}
	r.rejected.Inc()
	r.log.Debug("rejected sample",
		zap.String("rate", r.name),
		zap.Float64("value", value),
		zap.Error(err),
	)
	return err
}

func (r *rate) Read() float64 {
	value, err := r.reads.Get()
	if err != nil {
		r.log.Debug("failed to read rate",
			zap.String("rate", r.name),
			zap.Error(err),
		)
		return 0
	}
	return value
}

func (r *rate) WarmedUp() bool {
	return r.averager.WarmedUp()
}
