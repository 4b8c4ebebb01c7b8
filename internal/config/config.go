package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ingestion modes recognized by the source router.
const (
	ModeMock    = "mock"
	ModeRSS     = "rss"
	ModeDataset = "dataset"
	ModeHybrid  = "hybrid"
)

type Config struct {
	AppEnv      string
	Port        string
	LogLevel    string
	LogFormat   string
	FrontendURL string

	IngestionMode string
	Subreddits    []string
	UserAgent     string
	FeedTimeout   time.Duration
	FetchCooldown time.Duration
	DatasetPath   string
	SampleSize    int

	MinScore             float64
	MaxScore             float64
	MaxPosts             int
	EMAAlpha             float64
	EngagementMultiplier float64
	MinWordCount         int
	DedupWindowSize      int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		IngestionMode: strings.ToLower(getEnv("INGESTION_MODE", ModeHybrid)),
		Subreddits:    splitList(getEnv("SUBREDDITS", "cryptocurrency,bitcoin,ethtrader,defi")),
		UserAgent:     getEnv("USER_AGENT", "SentimentOracle/1.0 (Research Project)"),
		DatasetPath:   getEnv("DATASET_PATH", "data/sentiment140.csv"),
	}

	var err error
	if cfg.FeedTimeout, err = getEnvDuration("FEED_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchCooldown, err = getEnvDuration("FETCH_COOLDOWN", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SampleSize, err = getEnvInt("SAMPLE_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.MinScore, err = getEnvFloat("MIN_SCORE", -100); err != nil {
		return nil, err
	}
	if cfg.MaxScore, err = getEnvFloat("MAX_SCORE", 100); err != nil {
		return nil, err
	}
	if cfg.MaxPosts, err = getEnvInt("MAX_POSTS", 50); err != nil {
		return nil, err
	}
	if cfg.EMAAlpha, err = getEnvFloat("EMA_ALPHA", 0.3); err != nil {
		return nil, err
	}
	if cfg.EngagementMultiplier, err = getEnvFloat("ENGAGEMENT_MULTIPLIER", 1.5); err != nil {
		return nil, err
	}
	if cfg.MinWordCount, err = getEnvInt("MIN_WORD_COUNT", 5); err != nil {
		return nil, err
	}
	if cfg.DedupWindowSize, err = getEnvInt("DEDUP_WINDOW_SIZE", 500); err != nil {
		return nil, err
	}

	if cfg.MinScore >= cfg.MaxScore {
		return nil, fmt.Errorf("MIN_SCORE (%v) must be below MAX_SCORE (%v)", cfg.MinScore, cfg.MaxScore)
	}
	if cfg.EMAAlpha < 0 || cfg.EMAAlpha > 1 {
		return nil, fmt.Errorf("EMA_ALPHA must be in [0, 1], got %v", cfg.EMAAlpha)
	}
	if cfg.MaxPosts <= 0 {
		return nil, fmt.Errorf("MAX_POSTS must be positive, got %d", cfg.MaxPosts)
	}
	if cfg.DedupWindowSize <= 0 {
		return nil, fmt.Errorf("DEDUP_WINDOW_SIZE must be positive, got %d", cfg.DedupWindowSize)
	}
	if cfg.SampleSize <= 0 {
		return nil, fmt.Errorf("SAMPLE_SIZE must be positive, got %d", cfg.SampleSize)
	}
	if cfg.EngagementMultiplier <= 0 {
		return nil, fmt.Errorf("ENGAGEMENT_MULTIPLIER must be positive, got %v", cfg.EngagementMultiplier)
	}
	if len(cfg.Subreddits) == 0 {
		return nil, fmt.Errorf("SUBREDDITS must name at least one subreddit")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 30s): %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
