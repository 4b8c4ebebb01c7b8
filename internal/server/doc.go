// Package server exposes the pipeline over HTTP: the oracle and sentiment
// endpoints trigger a cycle, the metrics and health endpoints observe it.
package server
