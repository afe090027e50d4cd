// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/timer"
	"github.com/ava-labs/ratemeter/utils/timer/mockable"
	"github.com/ava-labs/ratemeter/utils/wrappers"
)

// HTTPInterceptor times every request it wraps. Durations feed a decaying
// average and a histogram labelled by method. Responses with a 5xx status are
// counted as errors.
type HTTPInterceptor struct {
	timer           *timer.Timer
	latency         Rate
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

func NewHTTPInterceptor(
	namespace string,
	interval time.Duration,
	log logging.Logger,
	reg prometheus.Registerer,
	opts ...RateOption,
) (*HTTPInterceptor, error) {
	config := rateConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	clock := config.clock
	if clock == nil {
		clock = &mockable.Clock{}
	}

	rateOpts := make([]RateOption, 0, len(opts)+1)
	rateOpts = append(rateOpts, opts...)
	rateOpts = append(rateOpts, WithClock(clock))

	errs := wrappers.Errs{}
	latency := NewRateWithErrs(
		namespace,
		"request_latency",
		"Decaying average of request latency, in nanoseconds",
		interval,
		log,
		reg,
		&errs,
		rateOpts...,
	)
	if latency == nil {
		return nil, errs.Err
	}

	i := &HTTPInterceptor{
		timer: timer.NewTimer(
			latency,
			timer.WithClock(clock),
			timer.WithLogger(log),
		),
		latency: latency,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration",
				Help:      "Request duration, in nanoseconds",
				Buckets:   NanosecondsBuckets,
			},
			[]string{"method"},
		),
		requestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_error_count",
				Help:      "Number of requests answered with a server error",
			},
			[]string{"method"},
		),
	}
	errs.Add(
		reg.Register(i.requestDuration),
		reg.Register(i.requestErrors),
	)
	return i, errs.Err
}

// WrapHandler returns [next] instrumented by the interceptor.
func (i *HTTPInterceptor) WrapHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		ctx := i.timer.Start()
		defer func() {
			// Rejected samples are counted and logged by the rate.
			_ = ctx.Stop()
			i.requestDuration.WithLabelValues(r.Method).Observe(float64(ctx.Elapsed()))
			if sw.status >= http.StatusInternalServerError {
				i.requestErrors.WithLabelValues(r.Method).Inc()
			}
		}()

		next.ServeHTTP(sw, r)
	})
}

// Requests returns the number of requests that completed.
func (i *HTTPInterceptor) Requests() uint64 {
	return i.timer.Count()
}

// Latency returns the decaying average of request latency.
func (i *HTTPInterceptor) Latency() Rate {
	return i.latency
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}
