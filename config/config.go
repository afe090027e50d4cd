// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/math"
)

const maxHTTPPort = 1<<16 - 1

var (
	errMissingProbeTarget     = errors.New("probe target must be set")
	errInvalidProbeTarget     = errors.New("probe target must be an http(s) URL")
	errInvalidProbeFrequency  = errors.New("probe frequency must be positive")
	errInvalidProbeTimeout    = errors.New("probe timeout must be positive")
	errInvalidFailureWindow   = errors.New("failure window must be positive")
	errInvalidMaxFailures     = errors.New("max failures must be positive")
	errInvalidMetricNamespace = errors.New("metrics namespace must be set")
	errInvalidRateBurst       = errors.New("rate burst must be positive when throttling")
	errInvalidHTTPPort        = errors.New("http port must fit in 16 bits")
)

type Config struct {
	Logging logging.Config `json:"logging"`

	MetricsNamespace string        `json:"metricsNamespace"`
	DecayInterval    time.Duration `json:"decayInterval"`
	WarmupGating     bool          `json:"warmupGating"`

	HTTPHost           string   `json:"httpHost"`
	HTTPPort           uint     `json:"httpPort"`
	HTTPAllowedOrigins []string `json:"httpAllowedOrigins"`
	HTTPRateLimit      float64  `json:"httpRateLimit"`
	HTTPRateBurst      int      `json:"httpRateBurst"`

	Probe ProbeConfig `json:"probe"`
}

type ProbeConfig struct {
	Target        string        `json:"target"`
	Frequency     time.Duration `json:"frequency"`
	Timeout       time.Duration `json:"timeout"`
	FailureWindow time.Duration `json:"failureWindow"`
	MaxFailures   int           `json:"maxFailures"`
}

// GetConfig reads and validates the configuration held by [v].
func GetConfig(v *viper.Viper) (Config, error) {
	loggingConfig, err := getLoggingConfig(v)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		Logging:            loggingConfig,
		MetricsNamespace:   v.GetString(MetricsNamespaceKey),
		DecayInterval:      v.GetDuration(DecayIntervalKey),
		WarmupGating:       v.GetBool(WarmupGatingKey),
		HTTPHost:           v.GetString(HTTPHostKey),
		HTTPPort:           v.GetUint(HTTPPortKey),
		HTTPAllowedOrigins: v.GetStringSlice(HTTPAllowedOriginsKey),
		HTTPRateLimit:      v.GetFloat64(HTTPRateLimitKey),
		HTTPRateBurst:      v.GetInt(HTTPRateBurstKey),
		Probe: ProbeConfig{
			Target:        v.GetString(ProbeTargetKey),
			Frequency:     v.GetDuration(ProbeFrequencyKey),
			Timeout:       v.GetDuration(ProbeTimeoutKey),
			FailureWindow: v.GetDuration(FailureWindowKey),
			MaxFailures:   v.GetInt(MaxFailuresKey),
		},
	}
	return config, config.Verify()
}

func getLoggingConfig(v *viper.Viper) (logging.Config, error) {
	config := logging.DefaultConfig()

	var err error
	config.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return config, err
	}
	config.DisplayLevel = config.LogLevel
	if v.IsSet(LogDisplayLevelKey) {
		config.DisplayLevel, err = logging.ToLevel(v.GetString(LogDisplayLevelKey))
		if err != nil {
			return config, err
		}
	}
	config.DisplayHighlight, err = logging.ToHighlight(v.GetString(LogDisplayHighlightKey), os.Stdout.Fd())
	if err != nil {
		return config, err
	}
	config.Directory = v.GetString(LogDirKey)
	config.JSON = v.GetBool(LogFormatJSONKey)
	return config, nil
}

// Verify returns an error if the config can't be used to run a probe.
func (c *Config) Verify() error {
	switch {
	case c.DecayInterval <= 0:
		return fmt.Errorf("%w: %s=%s", math.ErrInvalidInterval, DecayIntervalKey, c.DecayInterval)
	case c.MetricsNamespace == "":
		return errInvalidMetricNamespace
	case c.HTTPPort > maxHTTPPort:
		return fmt.Errorf("%w: %d", errInvalidHTTPPort, c.HTTPPort)
	case c.HTTPRateLimit > 0 && c.HTTPRateBurst <= 0:
		return fmt.Errorf("%w: %d", errInvalidRateBurst, c.HTTPRateBurst)
	}
	return c.Probe.Verify()
}

func (c *ProbeConfig) Verify() error {
	switch {
	case c.Target == "":
		return errMissingProbeTarget
	case c.Frequency <= 0:
		return fmt.Errorf("%w: %s", errInvalidProbeFrequency, c.Frequency)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: %s", errInvalidProbeTimeout, c.Timeout)
	case c.FailureWindow <= 0:
		return fmt.Errorf("%w: %s", errInvalidFailureWindow, c.FailureWindow)
	case c.MaxFailures <= 0:
		return fmt.Errorf("%w: %d", errInvalidMaxFailures, c.MaxFailures)
	}

	u, err := url.Parse(c.Target)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidProbeTarget, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", errInvalidProbeTarget, c.Target)
	}
	return nil
}
