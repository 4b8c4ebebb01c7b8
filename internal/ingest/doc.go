// Package ingest implements the stabilization layers between the raw source
// adapters and the scoring pipeline.
//
// StreamManager gates each adapter behind a per-source cooldown with a
// last-good-result cache. Router merges the enabled sources for the
// configured mode and applies the RollingDeduplicator, a bounded FIFO hash
// window persisting across cycles. Aggregator is the stateless per-batch
// sort/dedup/truncate pass.
package ingest
