// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var allLevels = []Level{Off, Fatal, Error, Warn, Info, Trace, Debug, Verbo}

func TestAlignedString(t *testing.T) {
	require := require.New(t)

	for _, l := range allLevels {
		as := l.AlignedString()
		require.Len(as, alignedStringLen)
		s := l.String()
		switch {
		case len(s) >= alignedStringLen:
			require.Equal(s[:alignedStringLen], as)
		default:
			require.Equal(s, as[:len(s)])
			require.Equal(as[len(s):], strings.Repeat(" ", alignedStringLen-len(s)))
		}
	}
}

func TestToLevel(t *testing.T) {
	require := require.New(t)

	for _, l := range allLevels {
		parsed, err := ToLevel(strings.ToLower(l.String()))
		require.NoError(err)
		require.Equal(l, parsed)
	}

	_, err := ToLevel("loud")
	require.Error(err)
}

func TestLevelJSON(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(Trace)
	require.NoError(err)
	require.Equal(`"TRACE"`, string(b))

	var l Level
	require.NoError(json.Unmarshal([]byte(`"warn"`), &l))
	require.Equal(Warn, l)

	require.Error(json.Unmarshal([]byte(`"nope"`), &l))
}

func TestLevelZapMapping(t *testing.T) {
	require := require.New(t)

	require.Equal(zapcore.InfoLevel, zapcore.Level(Info))
	require.Equal(zapcore.WarnLevel, zapcore.Level(Warn))
	require.Equal(zapcore.ErrorLevel, zapcore.Level(Error))
	require.Equal(zapcore.DPanicLevel, zapcore.Level(Fatal))
	require.Less(int8(Verbo), int8(Debug))
	require.Less(int8(Debug), int8(Trace))
}
