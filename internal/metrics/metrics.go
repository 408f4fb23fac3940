// SPDX-License-Identifier: MIT

// Package metrics holds the solver's prometheus collectors. Collectors
// register with the default registry on first use.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "labyrinth"

var (
	registerOnce sync.Once

	rounds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "rounds_total",
			Help:      "Completed solver rounds.",
		},
	)
	roundDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "round_duration_seconds",
			Help:      "Solver round duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	plans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "plans_total",
			Help:      "Plans sent to the oracle by kind.",
		},
		[]string{"kind"},
	)
	actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "actions_total",
			Help:      "Plan actions sent to the oracle by kind.",
		},
		[]string{"kind"},
	)
	outcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "outcomes_total",
			Help:      "Resolved probe tasks by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	deficiencies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "deficiencies_total",
			Help:      "Finalizer deficiencies by kind.",
		},
		[]string{"kind"},
	)
	merges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "merge",
			Name:      "attempts_total",
			Help:      "Merge attempts by result.",
		},
		[]string{"result"},
	)
	oracleRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "requests_total",
			Help:      "Oracle API requests.",
		},
		[]string{"endpoint", "status"},
	)
	oracleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "request_duration_seconds",
			Help:      "Oracle API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)
)

// Register adds every collector to the default registry once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(rounds, roundDuration, plans, actions, outcomes,
			deficiencies, merges, oracleRequests, oracleDuration)
	})
}

// RecordRound counts one finished round.
func RecordRound(d time.Duration) {
	Register()
	rounds.Inc()
	roundDuration.Observe(d.Seconds())
}

// RecordPlans counts n plans of one kind totalling acts actions.
func RecordPlans(kind string, n, acts int) {
	Register()
	plans.WithLabelValues(kind).Add(float64(n))
	actions.WithLabelValues(kind).Add(float64(acts))
}

// RecordOutcome counts a resolved task.
func RecordOutcome(kind, outcome string) {
	Register()
	outcomes.WithLabelValues(kind, outcome).Inc()
}

// RecordDeficiency counts a finalizer deficiency.
func RecordDeficiency(kind string) {
	Register()
	deficiencies.WithLabelValues(kind).Inc()
}

// RecordMerge adds one merge pass's attempt counters.
func RecordMerge(accepted, rejected, skipped int) {
	Register()
	merges.WithLabelValues("accepted").Add(float64(accepted))
	merges.WithLabelValues("rejected").Add(float64(rejected))
	merges.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordOracleRequest counts one API round trip. Transport failures use
// status 0.
func RecordOracleRequest(endpoint string, status int, d time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	oracleRequests.WithLabelValues(endpoint, statusLabel).Inc()
	oracleDuration.WithLabelValues(endpoint, statusLabel).Observe(d.Seconds())
}
