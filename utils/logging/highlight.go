// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Highlighting modes available
const (
	Plain Highlight = iota
	Colors
)

var errUnknownHighlight = errors.New("unknown highlight")

// Highlight mode to apply to displayed logs
type Highlight int

// ToHighlight chooses a highlighting mode. "auto" selects Colors only if
// [fd] is a terminal.
func ToHighlight(h string, fd uintptr) (Highlight, error) {
	switch strings.ToUpper(h) {
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "AUTO":
		if !term.IsTerminal(int(fd)) {
			return Plain, nil
		}
		return Colors, nil
	default:
		return Plain, fmt.Errorf("%w: %q", errUnknownHighlight, h)
	}
}

func (h Highlight) MarshalJSON() ([]byte, error) {
	switch h {
	case Plain:
		return json.Marshal("PLAIN")
	case Colors:
		return json.Marshal("COLORS")
	default:
		return nil, errUnknownHighlight
	}
}

const resetColor = "\033[0;0m"

var levelColors = map[Level]string{
	Fatal: "\033[1;31m",
	Error: "\033[0;31m",
	Warn:  "\033[0;33m",
	Info:  "\033[0;32m",
	Trace: "\033[0;34m",
	Debug: "\033[0;36m",
	Verbo: "\033[0;37m",
}

func coloredLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	level := Level(l)
	color, ok := levelColors[level]
	if !ok {
		alignedLevelEncoder(l, enc)
		return
	}
	enc.AppendString(color + "[" + level.AlignedString() + "]" + resetColor)
}
