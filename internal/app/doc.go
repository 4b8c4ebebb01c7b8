// Package app provides the application service layer.
//
// Service orchestrates the pipeline use cases: run a cycle, report metrics,
// assemble health. It is the only component referencing multiple pipeline
// stages, and it serializes cycle execution so the stateful stages (dedup
// window, smoother) keep their determinism guarantees.
package app
