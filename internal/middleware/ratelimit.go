// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"zamzam/internal/metrics"
)

const msgTooManyRequests = "عدد كبير جداً من الطلبات، حاول مرة أخرى لاحقاً"

// RateLimit limits each client IP to requests per window. When counter is
// non-nil the counts are shared through it (Valkey); otherwise they are
// kept in process. requests <= 0 disables limiting.
func RateLimit(requests int, window time.Duration, counter httprate.LimitCounter) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimited.Inc()
			writeError(w, http.StatusTooManyRequests, "rate_limited", msgTooManyRequests)
		}),
	}
	if counter != nil {
		opts = append(opts, httprate.WithLimitCounter(counter))
	}
	return httprate.Limit(requests, window, opts...)
}
