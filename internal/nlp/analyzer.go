package nlp

import (
	"log/slog"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

// Analyzer attaches classified sentiment to cleaned posts.
type Analyzer struct {
	classifier domain.Classifier
}

func NewAnalyzer(classifier domain.Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Analyze classifies every cleaned post. A post whose classification fails is
// skipped with a warning; one bad post never aborts the batch.
func (a *Analyzer) Analyze(posts []domain.CleanedPost) []domain.AnalyzedPost {
	analyzed := make([]domain.AnalyzedPost, 0, len(posts))
	for _, post := range posts {
		classification, err := a.classifier.Classify(post.CleanedText)
		if err != nil {
			slog.Warn("Classification failed, skipping post", "source", post.Source, "error", err)
			continue
		}
		analyzed = append(analyzed, domain.AnalyzedPost{
			CleanedPost: post,
			Sentiment:   domain.SentimentFrom(classification),
		})
	}
	return analyzed
}
