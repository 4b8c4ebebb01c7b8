// Package metrics provides ingestion and scoring observability.
//
// The Tracker holds mutex-guarded per-source counters that back the
// /metrics/ingestion endpoint and the health checks. The same recording
// calls also feed the Prometheus collectors exposed on /metrics.
package metrics
