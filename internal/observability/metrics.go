package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RideAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxiapp", Name: "ride_api_requests_total", Help: "Total ride API calls issued by the client"},
		[]string{"operation", "outcome"},
	)
	RideAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxiapp",
			Name:      "ride_api_request_duration_seconds",
			Help:      "Ride API call latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	LocalSavesTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "taxiapp", Name: "local_saves_total", Help: "Rides persisted to the local store"},
	)

	StubRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxiapp_stub", Name: "http_requests_total", Help: "Total HTTP requests handled by the stub server"},
		[]string{"method", "path", "status"},
	)
)
