package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics to track
var (
	PartiesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ptbot_parties_created_total",
			Help: "Total number of parties created",
		},
	)
	OpenParties = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ptbot_parties_open",
			Help: "Number of currently open parties",
		},
	)
	RosterRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptbot_roster_requests_total",
			Help: "Roster mutation requests by operation and outcome",
		},
		[]string{"op", "outcome"},
	)
	AutoCloses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ptbot_auto_closes_total",
			Help: "Parties closed by the idle check",
		},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptbot_http_requests_total",
			Help: "HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)
)

// Register registers all collectors with the default registry
func Register() {
	prometheus.MustRegister(PartiesCreated, OpenParties, RosterRequests, AutoCloses, HTTPRequests)
}

// Handler returns the HTTP handler exposing the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
