// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zamzam_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zamzam_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zamzam_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Uploads
	UploadedFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zamzam_uploaded_files_total",
			Help: "Accepted uploaded files by content type",
		},
		[]string{"content_type"},
	)

	SkippedFiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zamzam_skipped_files_total",
			Help: "Uploaded files skipped for a disallowed extension",
		},
	)

	UploadedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zamzam_uploaded_bytes_total",
			Help: "Bytes written to asset storage",
		},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zamzam_storage_errors_total",
			Help: "Asset storage failures by operation",
		},
		[]string{"operation"},
	)

	// Engagement
	ContentViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zamzam_content_views_total",
			Help: "Content views recorded",
		},
	)

	ContentLikes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zamzam_content_likes_total",
			Help: "Content likes recorded",
		},
	)
)

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
