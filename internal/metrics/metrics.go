// Package metrics holds the Prometheus instruments shared across the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finapp_imports_total",
		Help: "Statement imports processed, by type and final status.",
	}, []string{"type", "status"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finapp_import_rows_total",
		Help: "Statement rows processed, by outcome.",
	}, []string{"outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finapp_http_requests_total",
		Help: "HTTP requests served, by method, route pattern and status code.",
	}, []string{"method", "route", "code"})

	RecordsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finapp_payment_records_generated_total",
		Help: "Payment records created by the schedule reconciler.",
	})
)
