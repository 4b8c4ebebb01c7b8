package domain

import "context"

// Source is a single post provider. Implementations must contain their own
// failures: on any internal error they return an empty slice and a non-nil
// error, never a panic. The caller records the outcome in metrics.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Post, error)
}

// Classifier maps cleaned text to a sentiment label and confidence.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(text string) (Classification, error)
	// Ready reports whether the classifier is loaded and able to serve.
	Ready() bool
}
