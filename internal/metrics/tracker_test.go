package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_RecordSuccessfulFetch(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())

	tracker.RecordFetch("reddit", true, 25, 120*time.Millisecond, nil)
	tracker.RecordFetch("reddit", true, 35, 80*time.Millisecond, nil)

	snap := tracker.Snapshot()
	src := snap.Sources["reddit"]
	assert.Equal(t, int64(2), src.FetchCount)
	assert.Equal(t, int64(2), src.SuccessCount)
	assert.Equal(t, int64(0), src.FailureCount)
	assert.Equal(t, int64(60), src.TotalPosts)
	assert.Equal(t, 100.0, src.SuccessRate)
	assert.Equal(t, 100.0, src.AvgLatencyMs)
	assert.Equal(t, 30.0, src.AvgPostsPerFetch)
	assert.NotEmpty(t, src.LastFetchTime)
}

func TestTracker_RecordFailedFetch(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())

	tracker.RecordFetch("reddit", true, 10, 50*time.Millisecond, nil)
	tracker.RecordFetch("reddit", false, 0, 5*time.Millisecond, errors.New("timeout"))

	src := tracker.Snapshot().Sources["reddit"]
	assert.Equal(t, int64(2), src.FetchCount)
	assert.Equal(t, int64(1), src.FailureCount)
	assert.Equal(t, 50.0, src.SuccessRate)
	assert.Equal(t, "timeout", src.LastError)
	assert.Equal(t, int64(10), src.TotalPosts, "failed fetches contribute no posts")
}

func TestTracker_DerivedValuesGuardZeroDenominators(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())

	tracker.RecordFetch("broken", false, 0, time.Millisecond, errors.New("down"))

	src := tracker.Snapshot().Sources["broken"]
	assert.Zero(t, src.SuccessRate)
	assert.Zero(t, src.AvgLatencyMs, "avg latency is 0 with no successes")
	assert.Zero(t, src.AvgPostsPerFetch)
}

func TestTracker_GlobalCounters(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())

	tracker.RecordCycle()
	tracker.RecordCycle()
	tracker.RecordDedup(7)
	tracker.RecordDedup(3)

	snap := tracker.Snapshot()
	assert.Equal(t, int64(2), snap.TotalCycles)
	assert.Equal(t, int64(10), snap.TotalDedupCollapsed)
}

func TestTracker_SourcesAreIndependent(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())

	tracker.RecordFetch("reddit", true, 10, time.Millisecond, nil)
	tracker.RecordFetch("dataset", false, 0, time.Millisecond, errors.New("missing file"))

	snap := tracker.Snapshot()
	assert.Equal(t, int64(0), snap.Sources["reddit"].FailureCount)
	assert.Equal(t, int64(1), snap.Sources["dataset"].FailureCount)
}

func TestTracker_ConcurrentRecording(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())

	const goroutines = 8
	const perGoroutine = 250

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			source := "reddit"
			if g%2 == 0 {
				source = "dataset"
			}
			for i := 0; i < perGoroutine; i++ {
				tracker.RecordFetch(source, i%2 == 0, 5, time.Millisecond, nil)
				tracker.RecordCycle()
				tracker.RecordDedup(1)
			}
		}(g)
	}
	wg.Wait()

	snap := tracker.Snapshot()
	total := snap.Sources["reddit"].FetchCount + snap.Sources["dataset"].FetchCount
	assert.Equal(t, int64(goroutines*perGoroutine), total)
	assert.Equal(t, int64(goroutines*perGoroutine), snap.TotalCycles)
	assert.Equal(t, int64(goroutines*perGoroutine), snap.TotalDedupCollapsed)
}

func TestTracker_SnapshotIsACopy(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())
	tracker.RecordFetch("reddit", true, 10, time.Millisecond, nil)

	snap := tracker.Snapshot()
	snap.Sources["reddit"] = SourceSnapshot{FetchCount: 999}

	require.Equal(t, int64(1), tracker.Snapshot().Sources["reddit"].FetchCount,
		"mutating a snapshot must not affect the tracker")
}
