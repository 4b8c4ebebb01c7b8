package domain

// Label is the direction of a classified sentiment.
type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
)

// Classification is the raw output of a Classifier: a label and a model
// confidence in [0, 1].
type Classification struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Sentiment is a Classification mapped into pipeline form, with the label
// resolved to a directional polarity (+1 or -1).
type Sentiment struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Polarity   int     `json:"polarity"`
}

// SentimentFrom converts a classifier result into a Sentiment.
func SentimentFrom(c Classification) Sentiment {
	polarity := -1
	if c.Label == LabelPositive {
		polarity = 1
	}
	return Sentiment{
		Label:      c.Label,
		Confidence: c.Score,
		Polarity:   polarity,
	}
}

// ScoreSnapshot is the scoring engine's output for one cycle.
// PositiveCount + NegativeCount always equals PostCount.
type ScoreSnapshot struct {
	RawScore      float64 `json:"raw_score"`
	PostCount     int     `json:"post_count"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
}
