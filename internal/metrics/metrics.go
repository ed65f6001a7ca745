// Package metrics holds the Prometheus collectors of the import pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Session outcomes.
const (
	OutcomeCommitted = "committed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
	OutcomeSingle    = "single"
)

type Metrics struct {
	ParsedRecords    prometheus.Counter
	LineErrors       *prometheus.CounterVec
	Warnings         *prometheus.CounterVec
	Sessions         *prometheus.CounterVec
	PersistedRecords prometheus.Counter
	CommitDuration   prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ParsedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qbank_import_parsed_records_total",
			Help: "Total number of records produced by the parser",
		}),
		LineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qbank_import_line_errors_total",
			Help: "Total number of rejected input lines",
		}, []string{"kind"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qbank_import_warnings_total",
			Help: "Total number of non-fatal parse warnings",
		}, []string{"kind"}),
		Sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qbank_import_sessions_total",
			Help: "Import sessions by outcome",
		}, []string{"outcome"}),
		PersistedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qbank_import_persisted_records_total",
			Help: "Total number of records written to the question store",
		}),
		CommitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qbank_import_commit_duration_seconds",
			Help:    "Time spent persisting one import",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ParsedRecords, m.LineErrors, m.Warnings, m.Sessions, m.PersistedRecords, m.CommitDuration)
	}
	return m
}
