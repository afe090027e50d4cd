// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/config"
	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/metric"
	"github.com/ava-labs/ratemeter/utils/timer"
	"github.com/ava-labs/ratemeter/utils/timer/mockable"
	"github.com/ava-labs/ratemeter/utils/wrappers"
)

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errUnhealthy        = errors.New("too many failed probes")
)

type Option func(*Prober)

// WithClock replaces the real clock used to time probes and to age failures.
func WithClock(clock *mockable.Clock) Option {
	return func(p *Prober) {
		p.clock = clock
	}
}

// WithHTTPClient replaces the client used to send probes.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// Prober periodically sends a GET request to a target and tracks the
// decaying average latency of the successful and of the failed attempts.
type Prober struct {
	log    logging.Logger
	clock  *mockable.Clock
	client *http.Client
	config config.ProbeConfig

	latency    metric.Rate
	errLatency metric.Rate
	durations  timer.Accumulator
	failures   *timer.TimedMeter
	attempts   *timer.Timer
}

func New(
	log logging.Logger,
	probeConfig config.ProbeConfig,
	namespace string,
	interval time.Duration,
	warmupGating bool,
	reg prometheus.Registerer,
	opts ...Option,
) (*Prober, error) {
	p := &Prober{
		log:    log.With(zap.String("target", probeConfig.Target)),
		clock:  &mockable.Clock{},
		client: &http.Client{},
		config: probeConfig,
	}
	for _, opt := range opts {
		opt(p)
	}

	rateOpts := []metric.RateOption{
		metric.WithClock(p.clock),
		metric.WithWarmupGating(warmupGating),
	}
	errs := wrappers.Errs{}
	p.latency = metric.NewRateWithErrs(
		namespace,
		"probe_latency",
		"Decaying average latency of successful probes, in nanoseconds",
		interval,
		p.log,
		reg,
		&errs,
		rateOpts...,
	)
	p.errLatency = metric.NewRateWithErrs(
		namespace,
		"probe_latency_err",
		"Decaying average latency of failed probes, in nanoseconds",
		interval,
		p.log,
		reg,
		&errs,
		rateOpts...,
	)
	if errs.Errored() {
		return nil, errs.Err
	}

	durations, err := metric.NewCounter(namespace, "probe_duration", reg)
	if err != nil {
		return nil, err
	}
	p.durations = durations
	p.failures = &timer.TimedMeter{
		Clock:    p.clock,
		Duration: probeConfig.FailureWindow,
	}
	p.attempts = timer.NewTimer(
		p.durations,
		timer.WithClock(p.clock),
		timer.WithLogger(p.log),
	)
	return p, nil
}

// Run probes the target immediately and then every configured frequency
// until [ctx] is cancelled.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.config.Frequency)
	defer ticker.Stop()

	p.log.Info("starting probe",
		zap.Duration("frequency", p.config.Frequency),
	)
	for {
		if err := p.Probe(ctx); err != nil {
			p.log.Debug("probe failed",
				zap.Error(err),
			)
		}

		select {
		case <-ticker.C:
			if ctx.Err() == nil {
				continue
			}
		case <-ctx.Done():
		}
		p.log.Info("stopping probe")
		return
	}
}

// Probe sends a single request to the target. The request's duration is
// reported to the success or the failure rate depending on its outcome.
//
// Probe must not be called concurrently.
func (p *Prober) Probe(ctx context.Context) error {
	var outcome error
	route := timer.NewTimer(
		timer.AccumulatorFunc(func(elapsed float64) error {
			if outcome != nil {
				p.failures.Tick()
				return p.errLatency.Add(elapsed)
			}
			return p.latency.Add(elapsed)
		}),
		timer.WithClock(p.clock),
		timer.WithLogger(p.log),
	)

	attempt := p.attempts.Start()
	_, err := timer.MeasureValue(route, func() (int, error) {
		status, err := p.get(ctx)
		if err == nil && status >= http.StatusInternalServerError {
			err = fmt.Errorf("%w: %d", errUnexpectedStatus, status)
		}
		outcome = err
		return status, err
	})
	if stopErr := attempt.Stop(); stopErr != nil {
		p.log.Debug("failed to record probe duration",
			zap.Error(stopErr),
		)
	}
	return err
}

func (p *Prober) get(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.Target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain the body so the connection can be reused.
	_, err = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, err
}

// Health describes the recent results of the prober.
type Health struct {
	Healthy         bool    `json:"healthy"`
	Error           string  `json:"error,omitempty"`
	Attempts        uint64  `json:"attempts"`
	RecentFailures  int     `json:"recentFailures"`
	Latency         float64 `json:"latency"`
	LatencyWarmedUp bool    `json:"latencyWarmedUp"`
	ErrLatency      float64 `json:"errLatency"`
}

// HealthCheck returns the current health of the prober and a non-nil error
// once the number of failures within the failure window reaches the
// configured maximum.
func (p *Prober) HealthCheck() (Health, error) {
	health := Health{
		Attempts:        p.attempts.Count(),
		RecentFailures:  p.failures.Ticks(),
		Latency:         p.latency.Read(),
		LatencyWarmedUp: p.latency.WarmedUp(),
		ErrLatency:      p.errLatency.Read(),
	}
	if health.RecentFailures >= p.config.MaxFailures {
		err := fmt.Errorf("%w: %d within %s", errUnhealthy, health.RecentFailures, p.config.FailureWindow)
		health.Error = err.Error()
		return health, err
	}
	health.Healthy = true
	return health, nil
}
