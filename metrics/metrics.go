// Package metrics exposes Prometheus counters for the logging
// subsystem. Emit-time failures are swallowed by design, so these
// counters are the only place they remain visible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinesEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostlog_lines_emitted_total",
		Help: "The total number of log lines written to the sink",
	}, []string{"level"})

	LinesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostlog_lines_dropped_total",
		Help: "The total number of log lines dropped before reaching the sink",
	}, []string{"reason"})

	SinkWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostlog_sink_write_failures_total",
		Help: "The total number of failed sink writes after successful configuration",
	})

	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostlog_api_requests_total",
		Help: "Total number of administrative API requests processed",
	}, []string{"method", "status"})
)

// Drop reasons for LinesDropped.
const (
	ReasonQueueFull  = "queue_full"
	ReasonWriteError = "write_error"
)
