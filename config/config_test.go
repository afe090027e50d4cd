// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/math"
)

func setupConfigJSON(t *testing.T, value string) string {
	configFilePath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFilePath, []byte(value), 0o600))
	return configFilePath
}

func TestGetConfigDefaults(t *testing.T) {
	require := require.New(t)

	v, err := BuildViper(BuildFlagSet(), []string{
		"--" + ProbeTargetKey, "http://127.0.0.1:8080/health",
	})
	require.NoError(err)

	config, err := GetConfig(v)
	require.NoError(err)
	require.Equal(10*time.Second, config.DecayInterval)
	require.True(config.WarmupGating)
	require.Equal("ratemeter", config.MetricsNamespace)
	require.Equal(uint(9650), config.HTTPPort)
	require.Equal([]string{"*"}, config.HTTPAllowedOrigins)
	require.Zero(config.HTTPRateLimit)
	require.Equal(logging.Info, config.Logging.LogLevel)
	require.Equal(logging.Info, config.Logging.DisplayLevel)
	require.Equal(time.Second, config.Probe.Frequency)
	require.Equal(10, config.Probe.MaxFailures)
}

func TestGetConfigFromFlags(t *testing.T) {
	require := require.New(t)

	v, err := BuildViper(BuildFlagSet(), []string{
		"--" + ProbeTargetKey, "https://example.com",
		"--" + DecayIntervalKey, "1m",
		"--" + LogLevelKey, "debug",
		"--" + LogDisplayLevelKey, "warn",
		"--" + WarmupGatingKey + "=false",
		"--" + LogDisplayHighlightKey, "colors",
		"--" + HTTPAllowedOriginsKey, "http://a.local,http://b.local",
	})
	require.NoError(err)

	config, err := GetConfig(v)
	require.NoError(err)
	require.Equal(time.Minute, config.DecayInterval)
	require.False(config.WarmupGating)
	require.Equal(logging.Debug, config.Logging.LogLevel)
	require.Equal(logging.Warn, config.Logging.DisplayLevel)
	require.Equal(logging.Colors, config.Logging.DisplayHighlight)
	require.Equal([]string{"http://a.local", "http://b.local"}, config.HTTPAllowedOrigins)
}

func TestGetConfigFromFile(t *testing.T) {
	require := require.New(t)

	path := setupConfigJSON(t, `{
		"probe-target": "http://localhost:1234",
		"probe-frequency": "250ms",
		"metrics-namespace": "edge"
	}`)
	v, err := BuildViper(BuildFlagSet(), []string{"--" + ConfigFileKey, path})
	require.NoError(err)

	config, err := GetConfig(v)
	require.NoError(err)
	require.Equal("http://localhost:1234", config.Probe.Target)
	require.Equal(250*time.Millisecond, config.Probe.Frequency)
	require.Equal("edge", config.MetricsNamespace)
}

func TestGetConfigFromEnv(t *testing.T) {
	require := require.New(t)

	t.Setenv("RATEMETER_PROBE_TARGET", "http://localhost:4321")
	t.Setenv("RATEMETER_DECAY_INTERVAL", "3s")

	v, err := BuildViper(BuildFlagSet(), nil)
	require.NoError(err)

	config, err := GetConfig(v)
	require.NoError(err)
	require.Equal("http://localhost:4321", config.Probe.Target)
	require.Equal(3*time.Second, config.DecayInterval)
}

func TestGetConfigErrors(t *testing.T) {
	tests := map[string]struct {
		args        []string
		env         map[string]string
		expectedErr error
	}{
		"missing target": {
			args:        nil,
			expectedErr: errMissingProbeTarget,
		},
		"zero decay interval": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + DecayIntervalKey, "0s"},
			expectedErr: math.ErrInvalidInterval,
		},
		"negative decay interval": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + DecayIntervalKey, "-1s"},
			expectedErr: math.ErrInvalidInterval,
		},
		"zero frequency": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + ProbeFrequencyKey, "0s"},
			expectedErr: errInvalidProbeFrequency,
		},
		"zero timeout": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + ProbeTimeoutKey, "0s"},
			expectedErr: errInvalidProbeTimeout,
		},
		"zero failure window": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + FailureWindowKey, "0s"},
			expectedErr: errInvalidFailureWindow,
		},
		"zero max failures": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + MaxFailuresKey, "0"},
			expectedErr: errInvalidMaxFailures,
		},
		"unsupported scheme": {
			args:        []string{"--" + ProbeTargetKey, "ftp://a"},
			expectedErr: errInvalidProbeTarget,
		},
		"throttled without burst": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + HTTPRateLimitKey, "5", "--" + HTTPRateBurstKey, "0"},
			expectedErr: errInvalidRateBurst,
		},
		"empty namespace": {
			args:        []string{"--" + ProbeTargetKey, "http://a", "--" + MetricsNamespaceKey, ""},
			expectedErr: errInvalidMetricNamespace,
		},
		"port out of range": {
			args:        []string{"--" + ProbeTargetKey, "http://a"},
			env:         map[string]string{"RATEMETER_HTTP_PORT": "70000"},
			expectedErr: errInvalidHTTPPort,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			for k, v := range test.env {
				t.Setenv(k, v)
			}

			v, err := BuildViper(BuildFlagSet(), test.args)
			require.NoError(err)

			_, err = GetConfig(v)
			require.ErrorIs(err, test.expectedErr)
		})
	}
}

func TestGetConfigInvalidLogLevel(t *testing.T) {
	require := require.New(t)

	v, err := BuildViper(BuildFlagSet(), []string{
		"--" + ProbeTargetKey, "http://a",
		"--" + LogLevelKey, "loud",
	})
	require.NoError(err)

	_, err = GetConfig(v)
	require.Error(err)
}
