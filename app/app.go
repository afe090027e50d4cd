// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type App interface {
	// Start kicks off the application and returns immediately
	Start() error

	// Stop notifies the application to exit and returns immediately
	Stop() error

	// ExitCode should only be called after [Start] returns with no error. It
	// should block until the application finishes
	ExitCode() (int, error)
}

// Run starts [app] and stops it on SIGINT or SIGTERM. The returned value is
// the exit code of the process.
func Run(app App) int {
	return RunWithSignals(app, syscall.SIGINT, syscall.SIGTERM)
}

// RunWithSignals is Run stopping on [signals].
func RunWithSignals(app App, signals ...os.Signal) int {
	ctx, cancel := signal.NotifyContext(context.Background(), signals...)
	defer cancel()

	if err := app.Start(); err != nil {
		return 1
	}

	exited := make(chan struct{})
	var eg errgroup.Group
	eg.Go(func() error {
		select {
		case <-ctx.Done():
			return app.Stop()
		case <-exited:
			return nil
		}
	})

	exitCode, err := app.ExitCode()
	close(exited)

	if err := eg.Wait(); err != nil {
		return 1
	}
	if err != nil {
		return 1
	}
	return exitCode
}
