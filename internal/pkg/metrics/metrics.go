// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PriceFeedRequests counts feed fetches by outcome (ok, error, bad_status, decode_error).
	PriceFeedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "balance_ranker",
		Name:      "price_feed_requests_total",
		Help:      "Price feed requests by outcome.",
	}, []string{"outcome"})

	// PriceFeedLatency observes feed round-trip time in seconds.
	PriceFeedLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "balance_ranker",
		Name:      "price_feed_request_duration_seconds",
		Help:      "Price feed request latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// PriceCacheLookups counts price table lookups by result (hit, miss).
	PriceCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "balance_ranker",
		Name:      "price_cache_lookups_total",
		Help:      "Price table cache lookups by result.",
	}, []string{"result"})

	// PipelineRuns counts display list computations.
	PipelineRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "balance_ranker",
		Name:      "pipeline_runs_total",
		Help:      "Balance pipeline runs.",
	})

	// DisplayedBalances observes how many balances survive the pipeline per run.
	DisplayedBalances = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "balance_ranker",
		Name:      "displayed_balances",
		Help:      "Balances returned per pipeline run.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	// Conversions counts swap quotes by result (ok, invalid_asset, division_by_zero, error).
	Conversions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "balance_ranker",
		Name:      "conversions_total",
		Help:      "Swap quotes by result.",
	}, []string{"result"})

	// BalanceSourceErrors counts partial balance source failures by source.
	BalanceSourceErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "balance_ranker",
		Name:      "balance_source_errors_total",
		Help:      "Balance source entries that failed to load.",
	}, []string{"source"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers every collector with the default registry. Safe to call twice.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		MustRegister(prometheus.DefaultRegisterer)
	})
}

// MustRegister registers every collector with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		PriceFeedRequests,
		PriceFeedLatency,
		PriceCacheLookups,
		PipelineRuns,
		DisplayedBalances,
		Conversions,
		BalanceSourceErrors,
	)
}
