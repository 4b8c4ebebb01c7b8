package metrics

import (
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// sourceStats holds the raw per-source counters. All fields are
// monotonically non-decreasing and guarded by the tracker mutex.
type sourceStats struct {
	fetchCount    int64
	successCount  int64
	failureCount  int64
	totalPosts    int64
	totalLatency  time.Duration
	lastError     string
	lastFetchTime time.Time
}

// SourceSnapshot is the exported view of one source's counters, including
// derived rates.
type SourceSnapshot struct {
	FetchCount       int64   `json:"fetch_count"`
	SuccessCount     int64   `json:"success_count"`
	FailureCount     int64   `json:"failure_count"`
	SuccessRate      float64 `json:"success_rate_percent"`
	TotalPosts       int64   `json:"total_posts"`
	AvgPostsPerFetch float64 `json:"avg_posts_per_fetch"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	LastFetchTime    string  `json:"last_fetch_time,omitempty"`
	LastError        string  `json:"last_error,omitempty"`
}

// Snapshot is a point-in-time copy of all tracker counters.
type Snapshot struct {
	TotalCycles         int64                     `json:"total_cycles"`
	TotalDedupCollapsed int64                     `json:"total_dedup_collapsed"`
	Sources             map[string]SourceSnapshot `json:"sources"`
}

// Tracker records ingestion health across all sources. Safe for concurrent
// use; source fetches in hybrid mode record from separate goroutines.
type Tracker struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	sources   map[string]*sourceStats
	collapsed int64
	cycles    int64
}

func NewTracker(clock clockwork.Clock) *Tracker {
	return &Tracker{
		clock:   clock,
		sources: make(map[string]*sourceStats),
	}
}

// RecordFetch records one fetch attempt for a source. On success the post
// count and latency feed the running averages; on failure the error message
// is retained for the health endpoint.
func (t *Tracker) RecordFetch(source string, success bool, postCount int, latency time.Duration, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.sources[source]
	if !ok {
		stats = &sourceStats{}
		t.sources[source] = stats
	}

	stats.fetchCount++
	if success {
		stats.successCount++
		stats.totalPosts += int64(postCount)
		stats.totalLatency += latency
		FetchesTotal.WithLabelValues(source, "success").Inc()
		PostsIngested.WithLabelValues(source).Add(float64(postCount))
	} else {
		stats.failureCount++
		if err != nil {
			stats.lastError = err.Error()
		}
		FetchesTotal.WithLabelValues(source, "failure").Inc()
	}
	stats.lastFetchTime = t.clock.Now().UTC()
	FetchDuration.WithLabelValues(source).Observe(latency.Seconds())
}

// RecordDedup adds to the global count of posts collapsed by deduplication.
func (t *Tracker) RecordDedup(collapsedCount int) {
	t.mu.Lock()
	t.collapsed += int64(collapsedCount)
	t.mu.Unlock()
	DedupDropped.Add(float64(collapsedCount))
}

// RecordCycle increments the global pipeline cycle counter.
func (t *Tracker) RecordCycle() {
	t.mu.Lock()
	t.cycles++
	t.mu.Unlock()
	CyclesTotal.Inc()
}

// Snapshot returns a copy of all counters plus derived values. Division
// guards: rates are 0 when their denominator is 0.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		TotalCycles:         t.cycles,
		TotalDedupCollapsed: t.collapsed,
		Sources:             make(map[string]SourceSnapshot, len(t.sources)),
	}

	for name, s := range t.sources {
		view := SourceSnapshot{
			FetchCount:   s.fetchCount,
			SuccessCount: s.successCount,
			FailureCount: s.failureCount,
			TotalPosts:   s.totalPosts,
			LastError:    s.lastError,
		}
		if s.fetchCount > 0 {
			view.SuccessRate = round2(float64(s.successCount) / float64(s.fetchCount) * 100)
		}
		if s.successCount > 0 {
			view.AvgLatencyMs = round2(float64(s.totalLatency.Milliseconds()) / float64(s.successCount))
			view.AvgPostsPerFetch = round2(float64(s.totalPosts) / float64(s.successCount))
		}
		if !s.lastFetchTime.IsZero() {
			view.LastFetchTime = s.lastFetchTime.Format(time.RFC3339)
		}
		snap.Sources[name] = view
	}

	return snap
}

// Reset clears all counters. Intended for tests.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sources = make(map[string]*sourceStats)
	t.collapsed = 0
	t.cycles = 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
