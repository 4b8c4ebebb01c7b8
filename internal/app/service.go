package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/ingest"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/metrics"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/nlp"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/scoring"
)

// OracleResult is the public per-cycle output of the pipeline.
type OracleResult struct {
	RawScore      float64   `json:"raw_score"`
	SmoothedScore float64   `json:"smoothed_score"`
	PostCount     int       `json:"post_count"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	LastUpdated   time.Time `json:"last_updated_timestamp"`
	Stale         bool      `json:"stale,omitempty"`
}

// PostDetail is the per-post breakdown returned by the sentiment endpoint.
type PostDetail struct {
	Text        string       `json:"text"`
	CleanedText string       `json:"cleaned_text"`
	Label       domain.Label `json:"label"`
	Confidence  float64      `json:"confidence"`
	Polarity    int          `json:"polarity"`
	Engagement  int          `json:"engagement"`
	Source      string       `json:"source,omitempty"`
}

// SentimentResult is OracleResult plus per-post detail.
type SentimentResult struct {
	OracleResult
	Posts []PostDetail `json:"posts"`
}

// Service owns the full pipeline and is its single entry point. Cycles are
// serialized under the service mutex: the dedup window, scoring, and
// smoother state must never be touched by two overlapping cycles.
type Service struct {
	router     *ingest.Router
	aggregator ingest.Aggregator
	cleaner    *nlp.Cleaner
	analyzer   *nlp.Analyzer
	engine     *scoring.Engine
	smoother   *scoring.Smoother
	tracker    *metrics.Tracker
	classifier domain.Classifier
	clock      clockwork.Clock

	mu       sync.Mutex
	lastGood *SentimentResult
}

func NewService(
	router *ingest.Router,
	aggregator ingest.Aggregator,
	cleaner *nlp.Cleaner,
	analyzer *nlp.Analyzer,
	engine *scoring.Engine,
	smoother *scoring.Smoother,
	tracker *metrics.Tracker,
	classifier domain.Classifier,
	clock clockwork.Clock,
) *Service {
	return &Service{
		router:     router,
		aggregator: aggregator,
		cleaner:    cleaner,
		analyzer:   analyzer,
		engine:     engine,
		smoother:   smoother,
		tracker:    tracker,
		classifier: classifier,
		clock:      clock,
	}
}

// RunCycle executes one full ingestion→score→smooth pass and returns the
// result with per-post detail. When a cycle yields zero posts after
// filtering, the smoother is left untouched and the last non-empty result is
// served marked stale, so the downstream consumer always has data.
func (s *Service) RunCycle(ctx context.Context) *SentimentResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.router.GetPosts(ctx)
	slog.Info("Pipeline start", "ingested", len(raw))

	aggregated := s.aggregator.Aggregate(raw)
	cleaned := s.cleaner.Apply(aggregated)
	analyzed := s.analyzer.Analyze(cleaned)
	slog.Info("Pipeline stabilized", "aggregated", len(aggregated), "cleaned", len(cleaned), "analyzed", len(analyzed))

	snapshot := s.engine.Compute(analyzed)

	if snapshot.PostCount == 0 {
		if s.lastGood != nil {
			slog.Info("Empty cycle, serving last good result")
			stale := *s.lastGood
			stale.Stale = true
			return &stale
		}
		return &SentimentResult{
			OracleResult: OracleResult{LastUpdated: s.clock.Now().UTC()},
			Posts:        []PostDetail{},
		}
	}

	smoothed := s.smoother.Smooth(snapshot.RawScore)

	metrics.RawScore.Set(snapshot.RawScore)
	metrics.SmoothedScore.Set(smoothed)
	metrics.ScoredPosts.Set(float64(snapshot.PostCount))
	slog.Info("Cycle scored",
		"raw_score", snapshot.RawScore,
		"smoothed_score", smoothed,
		"posts", snapshot.PostCount,
		"positive", snapshot.PositiveCount,
		"negative", snapshot.NegativeCount,
	)

	details := make([]PostDetail, 0, len(analyzed))
	for _, post := range analyzed {
		details = append(details, PostDetail{
			Text:        post.Text,
			CleanedText: post.CleanedText,
			Label:       post.Sentiment.Label,
			Confidence:  post.Sentiment.Confidence,
			Polarity:    post.Sentiment.Polarity,
			Engagement:  post.Engagement,
			Source:      post.Source,
		})
	}

	result := &SentimentResult{
		OracleResult: OracleResult{
			RawScore:      snapshot.RawScore,
			SmoothedScore: smoothed,
			PostCount:     snapshot.PostCount,
			PositiveCount: snapshot.PositiveCount,
			NegativeCount: snapshot.NegativeCount,
			LastUpdated:   s.clock.Now().UTC(),
		},
		Posts: details,
	}
	s.lastGood = result
	return result
}

// Metrics returns the ingestion tracker snapshot.
func (s *Service) Metrics() metrics.Snapshot {
	return s.tracker.Snapshot()
}

// ClassifierReady reports whether the classifier boundary is serving.
func (s *Service) ClassifierReady() bool {
	return s.classifier.Ready()
}
