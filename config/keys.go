// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey          = "config-file"
	VersionKey             = "version"
	LogLevelKey            = "log-level"
	LogDisplayLevelKey     = "log-display-level"
	LogDirKey              = "log-dir"
	LogFormatJSONKey       = "log-format-json"
	LogDisplayHighlightKey = "log-display-highlight"
	MetricsNamespaceKey    = "metrics-namespace"
	DecayIntervalKey       = "decay-interval"
	WarmupGatingKey        = "warmup-gating"
	HTTPHostKey            = "http-host"
	HTTPPortKey            = "http-port"
	HTTPAllowedOriginsKey  = "http-allowed-origins"
	HTTPRateLimitKey       = "http-rate-limit"
	HTTPRateBurstKey       = "http-rate-burst"
	ProbeTargetKey         = "probe-target"
	ProbeFrequencyKey      = "probe-frequency"
	ProbeTimeoutKey        = "probe-timeout"
	FailureWindowKey       = "failure-window"
	MaxFailuresKey         = "max-failures"
)
