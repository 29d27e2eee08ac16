// Package metrics holds the prometheus collectors of the portal API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ZohoTokenRefreshes counts calls to the Zoho OAuth token endpoint.
	ZohoTokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zoho",
			Name:      "token_refreshes_total",
			Help:      "Zoho OAuth token refreshes, by result.",
		},
		[]string{"result"},
	)

	ZohoRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zoho",
			Name:      "requests_total",
			Help:      "Zoho Books API requests, by operation and result.",
		},
		[]string{"operation", "result"},
	)

	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Zoho snapshot sync passes, by result.",
		},
		[]string{"result"},
	)

	SyncClients = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "clients_total",
			Help:      "Clients processed by the snapshot sync, by result.",
		},
		[]string{"result"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "duration_seconds",
			Help:      "Duration of a full snapshot sync pass.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
