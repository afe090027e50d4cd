// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package app

import (
	"context"
	"net"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/ratemeter/api/server"
	"github.com/ava-labs/ratemeter/config"
	"github.com/ava-labs/ratemeter/probe"
	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/metric"
	"github.com/ava-labs/ratemeter/utils/wrappers"
)

const (
	metricsEndpoint = "/metrics"
	healthEndpoint  = "/health"
)

var _ App = (*ratemeter)(nil)

type ratemeter struct {
	log    logging.Logger
	prober *probe.Prober
	server *server.Server

	ctx    context.Context
	cancel context.CancelFunc
	eg     *errgroup.Group

	addrLock sync.Mutex
	addr     net.Addr
}

// New wires a prober and the HTTP server exporting its metrics. Every metric
// is registered in [reg], alongside the process and Go runtime collectors.
func New(config config.Config, log logging.Logger, reg *prometheus.Registry) (App, error) {
	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: config.MetricsNamespace,
		})),
		reg.Register(collectors.NewGoCollector()),
	)
	if errs.Errored() {
		return nil, errs.Err
	}

	prober, err := probe.New(
		log,
		config.Probe,
		config.MetricsNamespace,
		config.DecayInterval,
		config.WarmupGating,
		reg,
	)
	if err != nil {
		return nil, err
	}

	interceptor, err := metric.NewHTTPInterceptor(
		config.MetricsNamespace,
		config.DecayInterval,
		log,
		reg,
		metric.WithWarmupGating(config.WarmupGating),
	)
	if err != nil {
		return nil, err
	}

	srv := server.New(
		log,
		config.HTTPHost,
		uint16(config.HTTPPort),
		config.HTTPAllowedOrigins,
		interceptor,
		server.NewThrottler(log, config.HTTPRateLimit, config.HTTPRateBurst),
	)
	// Compression is handled by the server for every route.
	srv.AddRoute(metricsEndpoint, promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:           reg,
		DisableCompression: true,
	}))
	srv.AddRoute(healthEndpoint, probe.NewHealthHandler(log, prober))

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)
	return &ratemeter{
		log:    log,
		prober: prober,
		server: srv,
		ctx:    ctx,
		cancel: cancel,
		eg:     eg,
	}, nil
}

func (r *ratemeter) Start() error {
	addr, err := r.server.Listen()
	if err != nil {
		r.cancel()
		return err
	}
	r.addrLock.Lock()
	r.addr = addr
	r.addrLock.Unlock()

	r.eg.Go(func() error {
		var err error
		r.log.RecoverAndPanic(func() {
			err = r.server.Serve()
		})
		return err
	})
	r.eg.Go(func() error {
		r.log.RecoverAndPanic(func() {
			r.prober.Run(r.ctx)
		})
		return nil
	})
	// A failing server stops the prober through the group's context.
	r.eg.Go(func() error {
		<-r.ctx.Done()
		return r.server.Shutdown()
	})
	return nil
}

func (r *ratemeter) Stop() error {
	r.log.Info("shutting down")
	r.cancel()
	return nil
}

func (r *ratemeter) ExitCode() (int, error) {
	if err := r.eg.Wait(); err != nil {
		r.log.Error("ratemeter exited",
			zap.Error(err),
		)
		return 1, err
	}
	return 0, nil
}

// Addr returns the address the HTTP server is bound to, or nil before Start.
func (r *ratemeter) Addr() net.Addr {
	r.addrLock.Lock()
	defer r.addrLock.Unlock()

	return r.addr
}
