package scoring

import (
	"math"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

// Engine reduces a batch of analyzed posts to one bounded community score.
type Engine struct {
	engagementMultiplier float64
	minScore             float64
	maxScore             float64
}

func NewEngine(engagementMultiplier, minScore, maxScore float64) *Engine {
	return &Engine{
		engagementMultiplier: engagementMultiplier,
		minScore:             minScore,
		maxScore:             maxScore,
	}
}

// Compute derives the community score:
//
//	weight = engagement * confidence * engagementMultiplier
//	signal = polarity * weight
//	rawScore = mean(signal) / mean(weight) * 100, clamped to [min, max]
//
// The normalization ceiling is deliberately the MEAN per-post weight, not the
// maximum; dividing by the average weight makes the score independent of
// absolute engagement magnitude, which is what keeps a duplicated spam flood
// from scoring differently than a single copy of the same post.
//
// The result depends only on the multiset of (engagement, confidence,
// polarity) triples, never on input order.
func (e *Engine) Compute(posts []domain.AnalyzedPost) domain.ScoreSnapshot {
	if len(posts) == 0 {
		return domain.ScoreSnapshot{}
	}

	var signalSum, weightSum float64
	positive, negative := 0, 0

	for _, post := range posts {
		weight := float64(post.EngagementOrDefault()) * post.Sentiment.Confidence * e.engagementMultiplier
		signalSum += float64(post.Sentiment.Polarity) * weight
		weightSum += weight

		if post.Sentiment.Polarity > 0 {
			positive++
		} else {
			negative++
		}
	}

	n := float64(len(posts))
	communitySignal := signalSum / n
	normalizationCeiling := weightSum / n

	var rawScore float64
	if normalizationCeiling > 0 {
		rawScore = communitySignal / normalizationCeiling * 100
	}

	rawScore = math.Max(e.minScore, math.Min(e.maxScore, rawScore))

	return domain.ScoreSnapshot{
		RawScore:      round2(rawScore),
		PostCount:     len(posts),
		PositiveCount: positive,
		NegativeCount: negative,
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
