package nlp

import (
	"strings"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

// Lexicon weights for the built-in classifier. Positive weights pull toward
// POSITIVE, negative toward NEGATIVE. Tuned for the short crypto-community
// posts this oracle ingests.
var defaultLexicon = map[string]float64{
	"incredible":  2, "amazing": 2, "excellent": 2, "love": 2, "great": 1.5,
	"bullish":     2, "moon": 1.5, "solid": 1.5, "strong": 1, "good": 1,
	"transparent": 1.5, "progress": 1, "delivers": 1.5, "winning": 1.5,
	"partnership": 1, "growth": 1, "best": 1.5, "clear": 0.5, "up": 0.5,
	"profit":      1, "gains": 1.5, "rally": 1.5, "breakout": 1, "adoption": 1,

	"scam":    -2, "rug": -2, "rugpull": -2, "dump": -1.5, "dumping": -2,
	"crash":   -2, "dead": -1.5, "terrible": -2, "awful": -2, "hate": -2,
	"bearish": -2, "worst": -2, "fraud": -2, "ponzi": -2, "losing": -1.5,
	"loss":    -1, "down": -0.5, "fear": -1, "panic": -1.5, "broken": -1,
	"exit":    -0.5, "sell": -0.5, "selling": -1, "worthless": -2, "bad": -1,
}

// LexiconClassifier is the built-in deterministic Classifier. It satisfies
// the classifier boundary so the pipeline runs end to end without an
// external model; a transformer-backed implementation can be swapped in via
// the domain.Classifier interface.
type LexiconClassifier struct {
	lexicon map[string]float64
}

func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{lexicon: defaultLexicon}
}

// Classify scores cleaned text by summing lexicon weights over its tokens.
// Confidence grows with the net weight but stays within (0, 1).
func (c *LexiconClassifier) Classify(text string) (domain.Classification, error) {
	var net float64
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,!?;:'\"()")
		if w, ok := c.lexicon[token]; ok {
			net += w
		}
	}

	label := domain.LabelPositive
	if net < 0 {
		label = domain.LabelNegative
	}

	magnitude := net
	if magnitude < 0 {
		magnitude = -magnitude
	}
	confidence := 0.5 + magnitude*0.1
	if confidence > 0.98 {
		confidence = 0.98
	}

	return domain.Classification{Label: label, Score: round4(confidence)}, nil
}

// Ready always reports true; the lexicon is compiled in.
func (c *LexiconClassifier) Ready() bool {
	return true
}

func round4(v float64) float64 {
	return float64(int64(v*10000+0.5)) / 10000
}
