package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
	oracleerrors "github.com/kingsley-judewin/the-sentiment-oracle/internal/errors"
)

const (
	redditEngagementBaseline = 10
	breakerFailureThreshold  = 5
	breakerOpenTimeout       = 60 * time.Second
)

// Titles containing any of these phrases are treated as spam and dropped at
// the adapter boundary.
var spamPhrases = []string{
	"click here",
	"buy now",
	"limited time",
	"act fast",
	"free money",
	"guaranteed profit",
}

// Reddit fetches new posts from the configured subreddits via Reddit's
// public RSS feeds. All subreddit requests share one circuit breaker: a feed
// outage opens the breaker and subsequent cycles fail fast instead of
// stacking timeouts onto cycle latency.
type Reddit struct {
	subreddits []string
	client     *http.Client
	parser     *gofeed.Parser
	breaker    *gobreaker.CircuitBreaker
	userAgent  string
	minWords   int
	clock      clockwork.Clock
}

func NewReddit(subreddits []string, userAgent string, timeout time.Duration, minWords int, clock clockwork.Clock) *Reddit {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "reddit-rss",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Reddit{
		subreddits: subreddits,
		client:     &http.Client{Timeout: timeout},
		parser:     gofeed.NewParser(),
		breaker:    breaker,
		userAgent:  userAgent,
		minWords:   minWords,
		clock:      clock,
	}
}

func (r *Reddit) Name() string {
	return "reddit"
}

func (r *Reddit) Fetch(ctx context.Context) ([]domain.Post, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.fetchAll(ctx)
	})
	if err != nil {
		return nil, oracleerrors.SourceFetch(r.Name(), err)
	}
	return result.([]domain.Post), nil
}

// fetchAll collects posts across all subreddits. A single failing subreddit
// only costs its own posts; the fetch as a whole fails when every subreddit
// does.
func (r *Reddit) fetchAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	var lastErr error
	failures := 0

	for _, sub := range r.subreddits {
		subPosts, err := r.fetchSubreddit(ctx, sub)
		if err != nil {
			slog.Warn("Subreddit fetch failed", "subreddit", sub, "error", err)
			lastErr = err
			failures++
			continue
		}
		posts = append(posts, subPosts...)
	}

	if failures == len(r.subreddits) && lastErr != nil {
		return nil, fmt.Errorf("all %d subreddit fetches failed: %w", failures, lastErr)
	}
	return posts, nil
}

func (r *Reddit) fetchSubreddit(ctx context.Context, subreddit string) ([]domain.Post, error) {
	url := fmt.Sprintf("https://www.reddit.com/r/%s/new/.rss", subreddit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for r/%s: %w", subreddit, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("r/%s returned HTTP %d", subreddit, resp.StatusCode)
	}

	feed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing r/%s feed: %w", subreddit, err)
	}

	now := r.clock.Now().UTC()
	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if r.isSpam(title) {
			continue
		}

		published := now
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed.UTC()
		}

		author := ""
		if item.Author != nil {
			author = item.Author.Name
		}

		posts = append(posts, domain.Post{
			ID:         item.GUID,
			Text:       title,
			Engagement: r.engagementProxy(now, published),
			Timestamp:  published,
			Author:     author,
			Source:     r.Name(),
		})
	}
	return posts, nil
}

// engagementProxy weights posts by recentness instead of fabricating vote
// counts: fresher posts carry more of the live community mood.
func (r *Reddit) engagementProxy(now, published time.Time) int {
	age := now.Sub(published)
	switch {
	case age < 10*time.Minute:
		return redditEngagementBaseline + 15
	case age < 30*time.Minute:
		return redditEngagementBaseline + 8
	default:
		return redditEngagementBaseline
	}
}

func (r *Reddit) isSpam(title string) bool {
	if len(strings.Fields(title)) < r.minWords {
		return true
	}
	lowered := strings.ToLower(title)
	for _, phrase := range spamPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	// ALL CAPS shouting
	letters, upper := 0, 0
	for _, c := range title {
		if 'A' <= c && c <= 'Z' {
			letters++
			upper++
		} else if 'a' <= c && c <= 'z' {
			letters++
		}
	}
	return letters >= 5 && upper == letters
}
