// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package probe

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/utils/logging"
)

// NewHealthHandler returns a handler that reports the prober's health as
// JSON. Unhealthy probers are reported with a 503.
func NewHealthHandler(log logging.Logger, p *Prober) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		health, err := p.HealthCheck()
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(health); err != nil {
			log.Debug("failed to encode health",
				zap.Error(err),
			)
		}
	})
}
