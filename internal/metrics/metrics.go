package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ScopeBypassTotal counts superuser tenant-scope bypasses. A nonzero rate
	// outside back-office hours is worth looking at.
	ScopeBypassTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_tenant_scope_bypass_total",
			Help: "Total number of superuser tenant scope bypasses",
		},
	)

	ProfileMissingTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_profile_missing_total",
			Help: "Total number of requests by principals without a tenant profile",
		},
	)

	DocumentUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_document_uploads_total",
			Help: "Total number of document uploads by outcome",
		},
		[]string{"outcome"},
	)
)
