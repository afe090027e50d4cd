// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ratemeter"

// BuildFlagSet returns the complete set of flags for ratemeter
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ratemeter", pflag.ContinueOnError)

	fs.Bool(VersionKey, false, "If true, print version and quit")
	fs.String(ConfigFileKey, "", "Specifies a config file")

	// Logging
	fs.String(LogLevelKey, "info", "The log level. Should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogDisplayLevelKey, "", "The log display level. If left blank, will inherit the value of log-level. Otherwise, should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogDirKey, "", "Logging directory. If left blank, logs are only displayed")
	fs.Bool(LogFormatJSONKey, false, "If true, displayed logs are JSON encoded")
	fs.String(LogDisplayHighlightKey, "auto", "Whether to color/highlight display logs. Default highlights when the output is a terminal. Otherwise, should be one of {auto, plain, colors}")

	// Metrics
	fs.String(MetricsNamespaceKey, "ratemeter", "Namespace of every exported metric")
	fs.Duration(DecayIntervalKey, 10*time.Second, "Time constant of the decaying averages. Must be > 0")
	fs.Bool(WarmupGatingKey, true, "If true, averages are exported as 0 until they have warmed up")

	// HTTP
	fs.String(HTTPHostKey, "127.0.0.1", "Address of the metrics server")
	fs.Uint16(HTTPPortKey, 9650, "Port of the metrics server")
	fs.StringSlice(HTTPAllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port. Defaults to * which allows all origins")
	fs.Float64(HTTPRateLimitKey, 0, "Requests per second served by the metrics server. If <= 0, requests are not throttled")
	fs.Int(HTTPRateBurstKey, 100, "Number of requests the metrics server may serve in a burst when throttled")

	// Probe
	fs.String(ProbeTargetKey, "", "URL the probe sends GET requests to")
	fs.Duration(ProbeFrequencyKey, time.Second, "Time between two probes. Must be > 0")
	fs.Duration(ProbeTimeoutKey, 5*time.Second, "Timeout of a single probe. Must be > 0")
	fs.Duration(FailureWindowKey, time.Minute, "Window over which failed probes are counted for health")
	fs.Int(MaxFailuresKey, 10, "Number of failed probes within the failure window that marks the probe unhealthy")

	return fs
}

// BuildViper parses [args] and binds the result, the environment and the
// config file, if one is given, into a viper instance.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}
