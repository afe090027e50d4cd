// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package probe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/config"
	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/timer/mockable"
)

const namespace = "test"

var errConnectionRefused = errors.New("connection refused")

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("ok")),
		Header:     make(http.Header),
	}
}

func testConfig() config.ProbeConfig {
	return config.ProbeConfig{
		Target:        "http://probe.test/health",
		Frequency:     time.Second,
		Timeout:       time.Second,
		FailureWindow: time.Minute,
		MaxFailures:   2,
	}
}

// newTestProber returns a prober whose requests take [latency] on [clock]
// and are answered by [answer].
func newTestProber(
	t *testing.T,
	clock *mockable.Clock,
	latency time.Duration,
	answer func() (*http.Response, error),
) (*Prober, *prometheus.Registry) {
	t.Helper()

	client := &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			clock.Advance(latency)
			return answer()
		}),
	}
	reg := prometheus.NewRegistry()
	p, err := New(
		logging.NoLog{},
		testConfig(),
		namespace,
		time.Second,
		false,
		reg,
		WithClock(clock),
		WithHTTPClient(client),
	)
	require.NoError(t, err)
	return p, reg
}

func newFakeClock() *mockable.Clock {
	clock := &mockable.Clock{}
	clock.Set(time.Unix(1_000, 0))
	return clock
}

func TestProbeSuccess(t *testing.T) {
	require := require.New(t)

	clock := newFakeClock()
	p, reg := newTestProber(t, clock, 30*time.Millisecond, func() (*http.Response, error) {
		return respond(http.StatusOK), nil
	})

	require.NoError(p.Probe(context.Background()))
	require.Equal(float64(30*time.Millisecond), p.latency.Read())
	require.Zero(p.errLatency.Read())

	health, err := p.HealthCheck()
	require.NoError(err)
	require.True(health.Healthy)
	require.Equal(uint64(1), health.Attempts)
	require.Zero(health.RecentFailures)

	families, err := reg.Gather()
	require.NoError(err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	require.Subset(names, []string{
		"test_probe_latency",
		"test_probe_latency_err",
		"test_probe_duration_count",
		"test_probe_duration_sum",
	})
}

func TestProbeFailures(t *testing.T) {
	tests := []struct {
		name        string
		answer      func() (*http.Response, error)
		expectedErr error
	}{
		{
			name: "server error",
			answer: func() (*http.Response, error) {
				return respond(http.StatusServiceUnavailable), nil
			},
			expectedErr: errUnexpectedStatus,
		},
		{
			name: "transport error",
			answer: func() (*http.Response, error) {
				return nil, errConnectionRefused
			},
			expectedErr: errConnectionRefused,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			clock := newFakeClock()
			p, _ := newTestProber(t, clock, 20*time.Millisecond, test.answer)

			err := p.Probe(context.Background())
			require.ErrorIs(err, test.expectedErr)
			require.Equal(float64(20*time.Millisecond), p.errLatency.Read())
			require.Zero(p.latency.Read())
			require.Equal(1, p.failures.Ticks())
			require.Equal(uint64(1), p.attempts.Count())
		})
	}
}

func TestProbeClientErrorsAreNotFailures(t *testing.T) {
	require := require.New(t)

	clock := newFakeClock()
	p, _ := newTestProber(t, clock, time.Millisecond, func() (*http.Response, error) {
		return respond(http.StatusNotFound), nil
	})

	require.NoError(p.Probe(context.Background()))
	require.Zero(p.failures.Ticks())
}

func TestProbeTimeout(t *testing.T) {
	require := require.New(t)

	cfg := testConfig()
	cfg.Timeout = 10 * time.Millisecond
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}),
	}
	p, err := New(logging.NoLog{}, cfg, namespace, time.Second, false, prometheus.NewRegistry(), WithHTTPClient(client))
	require.NoError(err)

	err = p.Probe(context.Background())
	require.ErrorIs(err, context.DeadlineExceeded)
	require.Equal(1, p.failures.Ticks())
}

func TestHealthCheck(t *testing.T) {
	require := require.New(t)

	clock := newFakeClock()
	p, _ := newTestProber(t, clock, time.Millisecond, func() (*http.Response, error) {
		return nil, errConnectionRefused
	})
	handler := NewHealthHandler(logging.NoLog{}, p)

	require.Error(p.Probe(context.Background()))
	_, err := p.HealthCheck()
	require.NoError(err)

	require.Error(p.Probe(context.Background()))
	_, err = p.HealthCheck()
	require.ErrorIs(err, errUnhealthy)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(http.StatusServiceUnavailable, rec.Code)

	var health Health
	require.NoError(json.NewDecoder(rec.Body).Decode(&health))
	require.False(health.Healthy)
	require.Equal(2, health.RecentFailures)
	require.NotEmpty(health.Error)

	// Failures age out of the window.
	clock.Advance(time.Minute)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(http.StatusOK, rec.Code)
}

func TestNewInvalidInterval(t *testing.T) {
	require := require.New(t)

	p, err := New(logging.NoLog{}, testConfig(), namespace, 0, false, prometheus.NewRegistry())
	require.Error(err)
	require.Nil(p)
}

func TestRun(t *testing.T) {
	require := require.New(t)

	var (
		lock     sync.Mutex
		requests int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		lock.Lock()
		requests++
		lock.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Target = server.URL
	cfg.Frequency = 5 * time.Millisecond
	log, logs := logging.NewObservedLogger(logging.Info)
	p, err := New(log, cfg, namespace, time.Second, false, prometheus.NewRegistry())
	require.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	require.Eventually(func() bool {
		return p.attempts.Count() >= 3
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	<-done

	tagged := logs.FilterField(zap.String("target", server.URL))
	require.Equal(1, tagged.FilterMessage("starting probe").Len())
	require.Equal(1, tagged.FilterMessage("stopping probe").Len())

	lock.Lock()
	defer lock.Unlock()
	require.GreaterOrEqual(requests, 3)

	// A probe racing the cancellation may have failed.
	health, _ := p.HealthCheck()
	require.Positive(health.Latency)
}
