package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Point operations
	PointOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Total successful point operations",
		},
		[]string{"kind"}, // charge|use
	)
	PointOperationsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_failed_total",
			Help: "Total rejected or failed point operations",
		},
		[]string{"reason"},
	)
	HistoryAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_history_append_failures_total",
			Help: "History appends that failed after the balance committed",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// handler for the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(PointOperationsTotal)
	prometheus.MustRegister(PointOperationsFailed)
	prometheus.MustRegister(HistoryAppendFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
