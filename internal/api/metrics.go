package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outcomeOK labels calls that returned a success value; failures are
// labelled with their error kind.
const outcomeOK = "ok"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hypersave_client",
			Name:      "requests_total",
			Help:      "API calls by operation and outcome (ok or error kind).",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hypersave_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of API calls including body decode.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
