// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups every metric the API records.
type Collectors struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	StatusReviews   prometheus.Counter
}

// New creates the collectors and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry() so runs do not collide on the global registry.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "casework",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "casework",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StatusReviews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "casework",
			Name:      "activity_status_review_total",
			Help:      "Derived activity statuses whose stored status disagreed with the recommendation.",
		}),
	}
	reg.MustRegister(c.Requests, c.RequestDuration, c.StatusReviews)
	return c
}
