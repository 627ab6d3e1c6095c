package wipe

import (
	"repo-sweep/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// sweepMetrics wraps the global metrics to implement the Metrics interface
type sweepMetrics struct{}

func (sweepMetrics) EntriesDeleted() prometheus.Counter { return metrics.EntriesDeletedTotal }
func (sweepMetrics) Retries() prometheus.Counter        { return metrics.RetriesTotal }
func (sweepMetrics) Warnings() prometheus.Counter       { return metrics.WarningsTotal }

// DefaultMetrics returns the Metrics implementation backed by the process
// Prometheus registry. metrics.Init must have run first.
func DefaultMetrics() Metrics {
	return sweepMetrics{}
}
