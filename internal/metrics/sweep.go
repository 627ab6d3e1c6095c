package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sweep subsystem metrics
var (
	// SweepDuration tracks how long full sweeps (walk + purge) take
	SweepDuration prometheus.Histogram

	// CloneDuration tracks how long the external checkout takes
	CloneDuration prometheus.Histogram

	// EntriesDeletedTotal tracks total leaf entries deleted by the walker
	EntriesDeletedTotal prometheus.Counter

	// RetriesTotal tracks permission-denied escalations to forced removal
	RetriesTotal prometheus.Counter

	// WarningsTotal tracks non-fatal leaf failures deferred to the finalizer
	WarningsTotal prometheus.Counter

	// SweepsTotal tracks completed sweeps by outcome
	SweepsTotal *prometheus.CounterVec

	// ErrorsTotal tracks fatal errors (listing, purge, clone)
	ErrorsTotal prometheus.Counter

	// LastSweepTimestamp records Unix timestamp of the last completed sweep
	LastSweepTimestamp prometheus.Gauge
)

// initSweepMetrics initializes all sweep subsystem metrics
func initSweepMetrics() {
	SweepDuration = NewDurationHistogram(
		"reposweep_sweep_duration_seconds",
		"Duration of destination sweeps in seconds.",
	)

	CloneDuration = NewDurationHistogram(
		"reposweep_clone_duration_seconds",
		"Duration of external checkouts in seconds.",
	)

	EntriesDeletedTotal = NewCounter(
		"reposweep_entries_deleted_total",
		"Total number of leaf entries deleted by the walker.",
	)

	RetriesTotal = NewCounter(
		"reposweep_retries_total",
		"Total permission-denied retries escalated to forced removal.",
	)

	WarningsTotal = NewCounter(
		"reposweep_warnings_total",
		"Total non-fatal leaf failures deferred to the finalizer.",
	)

	SweepsTotal = NewCounterVec(
		"reposweep_sweeps_total",
		"Total completed sweeps by outcome (ok, list_error, purge_error).",
		[]string{"outcome"},
	)

	ErrorsTotal = NewCounter(
		"reposweep_errors_total",
		"Total fatal errors encountered by repo-sweep.",
	)

	LastSweepTimestamp = NewGauge(
		"reposweep_last_sweep_timestamp",
		"Timestamp of the last completed sweep (Unix epoch seconds).",
	)
}

// registerSweepMetrics registers sweep metrics with the default registry
func registerSweepMetrics() {
	prometheus.MustRegister(
		SweepDuration,
		CloneDuration,
		EntriesDeletedTotal,
		RetriesTotal,
		WarningsTotal,
		SweepsTotal,
		ErrorsTotal,
		LastSweepTimestamp,
	)
}

// RecordSweep marks a completed sweep with its outcome
func RecordSweep(outcome string) {
	SweepsTotal.WithLabelValues(outcome).Inc()
	LastSweepTimestamp.Set(float64(time.Now().Unix()))
}
