// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ratemeter/utils/timer"
	"github.com/ava-labs/ratemeter/utils/wrappers"
)

var (
	_ timer.Accumulator = (*counter)(nil)

	ErrNegativeValue = errors.New("counter values must be non-negative")
)

type counter struct {
	count prometheus.Counter
	sum   prometheus.Counter
}

// NewCounter registers <namespace>_<name>_count and <namespace>_<name>_sum
// and returns an accumulator that adds every reported value to the sum and
// increments the count.
func NewCounter(
	namespace,
	name string,
	reg prometheus.Registerer,
) (timer.Accumulator, error) {
	c := &counter{
		count: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_count",
			Help:      "Total number of observations",
		}),
		sum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_sum",
			Help:      "Sum of all observed values",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(c.count),
		reg.Register(c.sum),
	)
	return c, errs.Err
}

func (c *counter) Add(value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %f", ErrNegativeValue, value)
	}
	c.count.Inc()
	c.sum.Add(value)
	return nil
}
