package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/app"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/config"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/ingest"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/metrics"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/nlp"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/scoring"
)

type staticSource struct {
	name  string
	posts []domain.Post
	err   error
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Fetch(context.Context) ([]domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

type offlineClassifier struct{}

func (offlineClassifier) Classify(string) (domain.Classification, error) {
	return domain.Classification{}, errors.New("unavailable")
}
func (offlineClassifier) Ready() bool { return false }

func newTestServer(t *testing.T, classifier domain.Classifier, sources ...domain.Source) *Server {
	t.Helper()
	clock := clockwork.NewFakeClock()
	tracker := metrics.NewTracker(clock)
	manager := ingest.NewStreamManager(30*time.Second, clock)
	dedup := ingest.NewRollingDeduplicator(500, 3)
	router := ingest.NewRouter("test", map[string][]domain.Source{"test": sources}, "test", manager, dedup, tracker, clock)

	svc := app.NewService(
		router,
		ingest.NewAggregator(50),
		nlp.NewCleaner(3),
		nlp.NewAnalyzer(classifier),
		scoring.NewEngine(1.5, -100, 100),
		scoring.NewSmoother(0.3),
		tracker,
		classifier,
		clock,
	)

	cfg := &config.Config{Port: "0", FrontendURL: "http://localhost:5173"}
	return NewServer(cfg, svc)
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func feedPosts() []domain.Post {
	return []domain.Post{
		{Text: "this launch is amazing and the community loves it", Engagement: 40, Source: "feed"},
		{Text: "total rug pull disaster, devs dumped everything", Engagement: 25, Source: "feed"},
	}
}

func TestHandleOracle(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})

	rec := doRequest(t, srv, "/oracle")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RawScore      float64 `json:"raw_score"`
		SmoothedScore float64 `json:"smoothed_score"`
		PostCount     int     `json:"post_count"`
		PositiveCount int     `json:"positive_count"`
		NegativeCount int     `json:"negative_count"`
		LastUpdated   string  `json:"last_updated_timestamp"`
		Posts         []any   `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 2, body.PostCount)
	assert.Equal(t, body.PostCount, body.PositiveCount+body.NegativeCount)
	assert.GreaterOrEqual(t, body.RawScore, -100.0)
	assert.LessOrEqual(t, body.RawScore, 100.0)
	assert.NotEmpty(t, body.LastUpdated)
	assert.Nil(t, body.Posts, "oracle summary must not carry per-post detail")
}

func TestHandleSentimentIncludesPostDetail(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})

	rec := doRequest(t, srv, "/sentiment")
	require.Equal(t, http.StatusOK, rec.Code)

	var body app.SentimentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Posts, 2)
	for _, post := range body.Posts {
		assert.NotEmpty(t, post.Text)
		assert.NotEmpty(t, post.CleanedText)
		assert.Contains(t, []domain.Label{domain.LabelPositive, domain.LabelNegative}, post.Label)
		assert.Contains(t, []int{-1, 1}, post.Polarity)
	}
}

func TestHandleHealthHealthy(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})

	rec := doRequest(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body app.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

func TestHandleHealthDegradedReturns503(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", err: errors.New("down")})

	// One failed cycle drives the source's success rate to zero.
	doRequest(t, srv, "/oracle")

	rec := doRequest(t, srv, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body app.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.True(t, body.Sources["feed"].Degraded)
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})

	rec := doRequest(t, srv, "/health/live")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime")
}

func TestHandleReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})
		rec := doRequest(t, srv, "/health/ready")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("classifier offline", func(t *testing.T) {
		srv := newTestServer(t, offlineClassifier{}, &staticSource{name: "feed", posts: feedPosts()})
		rec := doRequest(t, srv, "/health/ready")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "classifier", body["failed_check"])
	})
}

func TestHandleIngestionMetrics(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})
	doRequest(t, srv, "/oracle")

	rec := doRequest(t, srv, "/metrics/ingestion")
	require.Equal(t, http.StatusOK, rec.Code)

	var body metrics.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.TotalCycles)
	assert.Equal(t, int64(1), body.Sources["feed"].FetchCount)
	assert.Equal(t, 100.0, body.Sources["feed"].SuccessRate)
}

func TestHandlePrometheusMetrics(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})
	doRequest(t, srv, "/oracle")

	rec := doRequest(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oracle_")
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, nlp.NewLexiconClassifier(), &staticSource{name: "feed", posts: feedPosts()})

	rec := doRequest(t, srv, "/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
}
