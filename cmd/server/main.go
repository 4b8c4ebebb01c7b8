package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/app"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/config"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/ingest"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/logging"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/metrics"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/nlp"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/scoring"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/server"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/source"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Starting sentiment oracle",
		"version", version.Version,
		"mode", cfg.IngestionMode,
		"port", cfg.Port,
	)

	clock := clockwork.NewRealClock()

	svc := buildPipeline(cfg, clock)
	srv := server.NewServer(cfg, svc)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}

// buildPipeline wires every pipeline stage into the application service.
// All stateful components (cache, dedup window, smoother, tracker) are
// constructed here and owned for the process lifetime.
func buildPipeline(cfg *config.Config, clock clockwork.Clock) *app.Service {
	tracker := metrics.NewTracker(clock)
	manager := ingest.NewStreamManager(cfg.FetchCooldown, clock)
	dedup := ingest.NewRollingDeduplicator(cfg.DedupWindowSize, cfg.MinWordCount)

	mock := source.NewMock(clock)
	reddit := source.NewReddit(cfg.Subreddits, cfg.UserAgent, cfg.FeedTimeout, cfg.MinWordCount, clock)
	dataset := source.NewDataset(cfg.DatasetPath, cfg.SampleSize, clock)

	routes := map[string][]domain.Source{
		config.ModeMock:    {mock},
		config.ModeRSS:     {reddit},
		config.ModeDataset: {dataset},
		config.ModeHybrid:  {reddit, dataset},
	}
	router := ingest.NewRouter(cfg.IngestionMode, routes, config.ModeMock, manager, dedup, tracker, clock)
	slog.Info("Ingestion configured", "mode", router.Mode(), "sources", router.SourceNames())

	classifier := nlp.NewLexiconClassifier()

	return app.NewService(
		router,
		ingest.NewAggregator(cfg.MaxPosts),
		nlp.NewCleaner(cfg.MinWordCount),
		nlp.NewAnalyzer(classifier),
		scoring.NewEngine(cfg.EngagementMultiplier, cfg.MinScore, cfg.MaxScore),
		scoring.NewSmoother(cfg.EMAAlpha),
		tracker,
		classifier,
		clock,
	)
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}
