// Package metrics exposes Prometheus instrumentation for csvgraph
// conversions: tables built per strategy, rows and cells filled, inference
// outcomes and rejected column overrides.
//
// # Basic Usage
//
//	timer := metrics.NewTimer("array")
//	tbl, stats, err := builder.Fill(...)
//	if err != nil {
//		timer.Stop(metrics.ResultError)
//		return err
//	}
//	elapsed := timer.Stop(metrics.ResultSuccess)
//
// All collectors are registered on the default Prometheus registry at init
// time, so a process exposing /metrics picks them up without extra wiring.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "csvgraph"

var (
	// TablesBuilt counts finished conversions.
	// Labels: strategy (array/hashmap), result (success/empty/error)
	TablesBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_built_total",
			Help:      "Total number of property tables built",
		},
		[]string{"strategy", "result"},
	)

	// RowsFilled counts data rows written into tables.
	RowsFilled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_filled_total",
			Help:      "Total number of data rows written into property tables",
		},
	)

	// Cells counts non-empty cells by how their value was typed.
	// Labels: kind (int/double/boolean/string/typed)
	Cells = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_total",
			Help:      "Total number of cells set, by inferred kind",
		},
		[]string{"kind"},
	)

	// OverridesRejected counts ignored override parts.
	// Labels: field (identifier/datatype)
	OverridesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overrides_rejected_total",
			Help:      "Total number of column override parts rejected as invalid URIs",
		},
		[]string{"field"},
	)

	// BuildDuration tracks end-to-end conversion time including any pre-scan.
	// Labels: strategy
	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent building a property table",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4.4m
		},
		[]string{"strategy"},
	)
)

// Result labels for TablesBuilt.
const (
	ResultSuccess = "success"
	ResultEmpty   = "empty"
	ResultError   = "error"
)

// Timer measures one build for a strategy.
type Timer struct {
	start    time.Time
	strategy string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(strategy string) *Timer {
	return &Timer{
		start:    time.Now(),
		strategy: strategy,
	}
}

// Stop records the elapsed time in BuildDuration, counts the build under
// result and returns the duration.
func (t *Timer) Stop(result string) time.Duration {
	d := time.Since(t.start)
	BuildDuration.WithLabelValues(t.strategy).Observe(d.Seconds())
	TablesBuilt.WithLabelValues(t.strategy, result).Inc()
	return d
}
