package ingest

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/metrics"
)

// Router selects the enabled sources for the configured ingestion mode,
// fetches them through the StreamManager, and applies cross-cycle
// deduplication to the merged result.
type Router struct {
	manager *StreamManager
	dedup   *RollingDeduplicator
	tracker *metrics.Tracker
	clock   clockwork.Clock
	mode    string
	sources []domain.Source
}

// NewRouter resolves the mode against the dispatch table. An unknown mode
// falls back to the sources registered under fallbackMode with a warning
// rather than failing.
func NewRouter(
	mode string,
	routes map[string][]domain.Source,
	fallbackMode string,
	manager *StreamManager,
	dedup *RollingDeduplicator,
	tracker *metrics.Tracker,
	clock clockwork.Clock,
) *Router {
	sources, ok := routes[mode]
	if !ok || len(sources) == 0 {
		slog.Warn("Unknown ingestion mode, falling back", "mode", mode, "fallback", fallbackMode)
		sources = routes[fallbackMode]
		mode = fallbackMode
	}
	return &Router{
		manager: manager,
		dedup:   dedup,
		tracker: tracker,
		clock:   clock,
		mode:    mode,
		sources: sources,
	}
}

// Mode returns the effective ingestion mode after fallback resolution.
func (r *Router) Mode() string {
	return r.mode
}

// SourceNames returns the names of the enabled sources in dispatch order.
func (r *Router) SourceNames() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// GetPosts runs one ingestion pass: fetch every enabled source, merge, and
// deduplicate. One source failing or returning nothing never affects the
// others. The cycle counter is incremented exactly once per call.
func (r *Router) GetPosts(ctx context.Context) []domain.Post {
	defer r.tracker.RecordCycle()

	type result struct {
		posts []domain.Post
		fresh bool
	}
	results := make([]result, len(r.sources))

	var g errgroup.Group
	for i, src := range r.sources {
		i, src := i, src
		g.Go(func() error {
			posts, fresh := r.timedFetch(ctx, src)
			results[i] = result{posts: posts, fresh: fresh}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // fetch errors are isolated per source

	merged := make([]domain.Post, 0)
	anyFresh := false
	for _, res := range results {
		merged = append(merged, res.posts...)
		anyFresh = anyFresh || res.fresh
	}

	// Only re-deduplicate when at least one source produced fresh data;
	// an all-cache cycle has already been through the window and would be
	// wiped out by a second pass.
	if !anyFresh {
		slog.Info("No fresh data this cycle, skipping dedup", "mode", r.mode, "posts", len(merged))
		return merged
	}

	before := len(merged)
	survivors := r.dedup.Filter(merged)
	if collapsed := before - len(survivors); collapsed > 0 {
		r.tracker.RecordDedup(collapsed)
		slog.Info("Cross-cycle dedup", "mode", r.mode, "in", before, "out", len(survivors), "collapsed", collapsed)
	}

	return survivors
}

// timedFetch wraps a StreamManager fetch with latency timing and metrics.
// Failures surface only through the tracker; callers always get a post slice.
func (r *Router) timedFetch(ctx context.Context, src domain.Source) ([]domain.Post, bool) {
	start := r.clock.Now()
	posts, fresh, err := r.manager.Fetch(ctx, src)
	latency := r.clock.Since(start)

	r.tracker.RecordFetch(src.Name(), err == nil, len(posts), latency, err)
	if err != nil {
		slog.Error("Fetch failed", "source", src.Name(), "error", err, "cached_posts", len(posts))
	}
	return posts, fresh
}
