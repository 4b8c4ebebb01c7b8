package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics
var (
	// FetchesTotal tracks fetch attempts by source and status
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_fetches_total",
			Help: "Total source fetch attempts by source and status",
		},
		[]string{"source", "status"},
	)

	// FetchDuration tracks fetch latency in seconds per source
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_fetch_duration_seconds",
			Help:    "Source fetch duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	// PostsIngested tracks posts returned by successful fetches
	PostsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_posts_ingested_total",
			Help: "Total posts returned by successful fetches, by source",
		},
		[]string{"source"},
	)

	// CyclesTotal tracks completed pipeline cycles
	CyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oracle_cycles_total",
			Help: "Total pipeline cycles executed",
		},
	)

	// DedupDropped tracks posts collapsed by the cross-cycle deduplicator
	DedupDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oracle_dedup_dropped_total",
			Help: "Total posts dropped by cross-cycle deduplication",
		},
	)
)

// Scoring metrics
var (
	// RawScore is the most recent unsmoothed community score
	RawScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oracle_raw_score",
			Help: "Most recent raw community sentiment score",
		},
	)

	// SmoothedScore is the most recent EMA-smoothed community score
	SmoothedScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oracle_smoothed_score",
			Help: "Most recent smoothed community sentiment score",
		},
	)

	// ScoredPosts is the number of posts contributing to the latest score
	ScoredPosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oracle_scored_posts",
			Help: "Posts contributing to the most recent score",
		},
	)
)
