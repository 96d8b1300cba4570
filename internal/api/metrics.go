package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "elevation_report_http_requests_total",
		Help: "HTTP requests served, by path and status code.",
	}, []string{"path", "status"})

	snapshotRebuilds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "elevation_report_snapshot_rebuilds_total",
		Help: "Full pipeline rebuilds triggered by startup or reload.",
	})

	recordsIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "elevation_report_records_ingested_total",
		Help: "Survey records accepted from CSV imports.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, snapshotRebuilds, recordsIngested)
}

func observeRequest(path string, status int) {
	httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

func observeRebuild() {
	snapshotRebuilds.Inc()
}

func observeIngest(records int) {
	recordsIngested.Add(float64(records))
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
