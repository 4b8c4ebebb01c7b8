// Package source contains the post source adapters: a synthetic mock panel,
// a live Reddit RSS feed reader, and a replayable dataset sampler. Adapters
// never panic past their boundary; any failure comes back as an error with an
// empty result and the router records it.
package source
