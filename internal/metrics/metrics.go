// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	TransactionsCreated  *prometheus.CounterVec
	SeriesOccurrences    *prometheus.CounterVec
	RemindersCreated     *prometheus.CounterVec
	RemindersPublished   *prometheus.CounterVec
	OperatorQueueLatency prometheus.Histogram
	RequestDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TransactionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget",
			Name:      "transactions_created_total",
			Help:      "Transactions written, by type.",
		}, []string{"type"}),
		SeriesOccurrences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget",
			Name:      "series_occurrences_total",
			Help:      "Recurring series occurrences, by outcome.",
		}, []string{"outcome"}),
		RemindersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget",
			Name:      "reminders_created_total",
			Help:      "Reminder rows written alongside transactions, by outcome.",
		}, []string{"outcome"}),
		RemindersPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget",
			Name:      "reminders_published_total",
			Help:      "Due reminders handed to the message broker, by outcome.",
		}, []string{"outcome"}),
		OperatorQueueLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "budget",
			Name:      "operator_action_seconds",
			Help:      "Time from enqueueing a write action to its completion.",
			Buckets:   prometheus.DefBuckets,
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "budget",
			Name:      "http_request_duration_seconds",
			Help:      "API request latency, by operation and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
	}

	m.registry.MustRegister(
		m.TransactionsCreated,
		m.SeriesOccurrences,
		m.RemindersCreated,
		m.RemindersPublished,
		m.OperatorQueueLatency,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records the latency of every huma operation.
func (m *Metrics) Middleware() func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		operation := "unknown"
		if op := ctx.Operation(); op != nil {
			operation = op.OperationID
		}
		m.RequestDuration.
			WithLabelValues(operation, strconv.Itoa(ctx.Status())).
			Observe(time.Since(start).Seconds())
	}
}
