// Package domain defines the core types of the sentiment oracle pipeline.
//
// Posts flow through the pipeline as values: each stage produces a new slice
// rather than mutating its input. Source and Classifier are the two
// collaborator boundaries; everything else in this repository implements the
// pipeline between them.
package domain
