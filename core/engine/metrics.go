package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotal            prometheus.Counter
	attemptsTotal        *prometheus.CounterVec
	bestFitnessScore     prometheus.Gauge
	unassignedHoursGauge prometheus.Gauge
	runDuration          prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, *prometheus.CounterVec, prometheus.Gauge, prometheus.Gauge, prometheus.Histogram) {
	runs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_runs_total",
			Help: "Number of best-of-N scheduling runs started",
		},
	)
	att := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_attempts_total",
			Help: "Number of scheduling attempts by terminal state",
		},
		[]string{"state"},
	)
	fit := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_best_fitness_score",
			Help: "Fitness score of the best schedule of the latest run",
		},
	)
	unassigned := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_unassigned_hours",
			Help: "Unassigned lesson hours in the best schedule of the latest run",
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_run_duration_seconds",
			Help:    "Wall-clock duration of scheduling runs",
			Buckets: prometheus.DefBuckets,
		},
	)
	return runs, att, fit, unassigned, dur
}

func init() {
	runsTotal, attemptsTotal, bestFitnessScore, unassignedHoursGauge, runDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers engine metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(runsTotal, attemptsTotal, bestFitnessScore, unassignedHoursGauge, runDuration)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	runsTotal, attemptsTotal, bestFitnessScore, unassignedHoursGauge, runDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
