package scoring

import "sync"

// Smoother applies exponential moving average dampening to the raw score so
// a single viral post cannot yank the published value. One instance is one
// independent smoothing lineage; instances never share state.
type Smoother struct {
	mu       sync.Mutex
	alpha    float64
	previous float64
	seeded   bool
	history  []float64
}

// NewSmoother creates a smoother with the given alpha in [0, 1]. alpha=1
// passes raw scores straight through; alpha=0 freezes at the seed value.
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Smooth blends the raw score with the previous smoothed value. The first
// call seeds the lineage and returns the raw score unchanged. Every output
// stays within the range spanned by its inputs: a convex combination of two
// in-range values is in-range.
func (s *Smoother) Smooth(rawScore float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	smoothed := rawScore
	if s.seeded {
		smoothed = s.alpha*rawScore + (1-s.alpha)*s.previous
	}
	smoothed = round2(smoothed)

	s.previous = smoothed
	s.seeded = true
	s.history = append(s.history, smoothed)
	return smoothed
}

// LastScore returns the most recent smoothed value, and whether one exists.
func (s *Smoother) LastScore() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previous, s.seeded
}

// HasHistory reports whether the smoother has produced any value yet.
func (s *Smoother) HasHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) > 0
}

// History returns a copy of all smoothed values in order.
func (s *Smoother) History() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.history))
	copy(out, s.history)
	return out
}

// Reset clears the lineage. Intended for tests.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previous = 0
	s.seeded = false
	s.history = nil
}
