// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ava-labs/ratemeter/utils/logging"
)

var _ Wrapper = (*Throttler)(nil)

// Throttler rejects requests beyond a token bucket's rate with a 429.
type Throttler struct {
	log     logging.Logger
	limiter *rate.Limiter
}

// NewThrottler allows [limit] requests per second with bursts of up to
// [burst] requests. A non-positive limit disables throttling.
func NewThrottler(log logging.Logger, limit float64, burst int) *Throttler {
	l := rate.Inf
	if limit > 0 {
		l = rate.Limit(limit)
	}
	return &Throttler{
		log:     log,
		limiter: rate.NewLimiter(l, burst),
	}
}

func (t *Throttler) WrapHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.limiter.Allow() {
			t.log.Debug("dropping request",
				zap.String("path", r.URL.Path),
				zap.String("reason", "throttled"),
			)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
