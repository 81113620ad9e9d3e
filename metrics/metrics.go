// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus instrumentation for reminder runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

type Metrics struct {
	RemindersSent   prometheus.Counter
	RemindersFailed prometheus.Counter
	Runs            *prometheus.CounterVec
	RunDuration     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RemindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminder emails handed to the mail transport.",
		}),
		RemindersFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminders_failed_total",
			Help: "Total number of reminder emails that failed to render or send.",
		}),
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_runs_total",
			Help: "Total number of reminder dispatch runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_run_duration_seconds",
			Help:    "Duration of reminder dispatch runs.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}),
	}
}

// ObserveRun records one dispatch run. Safe on a nil receiver.
func (m *Metrics) ObserveRun(outcome string, d time.Duration, sent, failed int) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(d.Seconds())
	m.RemindersSent.Add(float64(sent))
	m.RemindersFailed.Add(float64(failed))
}

// Handler serves the registry in the Prometheus text format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
