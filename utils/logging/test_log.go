// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger returns a logger that records every message at or above
// [level] in memory, for assertions in tests.
func NewObservedLogger(level Level) (Logger, *observer.ObservedLogs) {
	atomicLevel := zap.NewAtomicLevelAt(zapcore.Level(level))
	core, logs := observer.New(atomicLevel)
	return NewLogger("", WrappedCore{
		Core:        core,
		Writer:      nopCloser{Writer: io.Discard},
		AtomicLevel: atomicLevel,
	}), logs
}
