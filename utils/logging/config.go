// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the cores built by Build.
type Config struct {
	// Level of the file core
	LogLevel Level `json:"logLevel"`
	// Level of the stdout core
	DisplayLevel Level `json:"displayLevel"`
	// JSON selects the JSON encoder for the stdout core
	JSON bool `json:"json"`
	// Ignored when JSON is set
	DisplayHighlight Highlight `json:"displayHighlight"`

	// If empty, no file core is created
	Directory  string `json:"directory"`
	LoggerName string `json:"loggerName"`
	// Megabytes a log file may grow to before it is rotated
	MaxSize int `json:"maxSize"`
	// Number of rotated files to retain
	MaxFiles int `json:"maxFiles"`
	// Days a rotated file is retained
	MaxAge   int  `json:"maxAge"`
	Compress bool `json:"compress"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:         Info,
		DisplayLevel:     Info,
		DisplayHighlight: Plain,
		LoggerName:       "ratemeter",
		MaxSize:          8,
		MaxFiles:         7,
		MaxAge:           0,
		Compress:         false,
	}
}

// Build returns a logger with a core writing to stdout and, if a directory is
// configured, a core writing JSON to a rotated file in that directory.
func Build(config Config) Logger {
	cores := []WrappedCore{
		NewWrappedCore(
			config.DisplayLevel,
			nopCloser{Writer: os.Stdout},
			newDisplayEncoder(config.JSON, config.DisplayHighlight),
		),
	}
	if config.Directory != "" {
		cores = append(cores, NewWrappedCore(
			config.LogLevel,
			&lumberjack.Logger{
				Filename:   filepath.Join(config.Directory, config.LoggerName+".log"),
				MaxSize:    config.MaxSize,
				MaxBackups: config.MaxFiles,
				MaxAge:     config.MaxAge,
				Compress:   config.Compress,
			},
			newFileEncoder(),
		))
	}
	return NewLogger(config.LoggerName, cores...)
}

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "timestamp",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    levelEncoder,
	EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

func newDisplayEncoder(json bool, highlight Highlight) zapcore.Encoder {
	if json {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	config := encoderConfig
	config.EncodeLevel = alignedLevelEncoder
	if highlight == Colors {
		config.EncodeLevel = coloredLevelEncoder
	}
	config.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(config)
}

func newFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(encoderConfig)
}

// nopCloser keeps Logger.Stop from closing a shared writer such as stdout.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
