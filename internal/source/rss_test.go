package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>newest submissions</title>
  %s
</feed>`

func feedEntry(id, title, author, published string) string {
	return fmt.Sprintf(`<entry>
  <id>%s</id>
  <title>%s</title>
  <author><name>%s</name></author>
  <published>%s</published>
</entry>`, id, title, author, published)
}

// testReddit points the adapter's subreddit URLs at a local test server by
// swapping the HTTP client transport.
type rewriteTransport struct {
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rewritten := rt.target + "/" + strings.TrimPrefix(req.URL.Path, "/")
	newReq, err := http.NewRequestWithContext(req.Context(), req.Method, rewritten, nil)
	if err != nil {
		return nil, err
	}
	newReq.Header = req.Header
	return http.DefaultTransport.RoundTrip(newReq)
}

func newTestReddit(t *testing.T, handler http.Handler, subreddits ...string) (*Reddit, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r := NewReddit(subreddits, "test-agent/1.0", 5*time.Second, 3, clockwork.NewRealClock())
	r.client.Transport = rewriteTransport{target: server.URL}
	return r, server
}

func TestReddit_FetchParsesFeed(t *testing.T) {
	published := time.Now().UTC().Add(-5 * time.Minute).Format(time.RFC3339)
	var gotUserAgent string

	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotUserAgent = req.Header.Get("User-Agent")
		entries := feedEntry("t3_abc", "bitcoin just broke through a major resistance level", "satoshi_fan", published)
		fmt.Fprintf(w, feedTemplate, entries)
	})

	r, _ := newTestReddit(t, handler, "bitcoin")
	posts, err := r.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, "test-agent/1.0", gotUserAgent)
	assert.Equal(t, "t3_abc", posts[0].ID)
	assert.Equal(t, "bitcoin just broke through a major resistance level", posts[0].Text)
	assert.Equal(t, "satoshi_fan", posts[0].Author)
	assert.Equal(t, "reddit", posts[0].Source)
	assert.Equal(t, redditEngagementBaseline+15, posts[0].Engagement, "a 5-minute-old post gets the freshest proxy")
}

func TestReddit_EngagementProxyByAge(t *testing.T) {
	r := NewReddit([]string{"bitcoin"}, "ua", time.Second, 3, clockwork.NewRealClock())
	now := time.Now().UTC()

	assert.Equal(t, 25, r.engagementProxy(now, now.Add(-5*time.Minute)))
	assert.Equal(t, 18, r.engagementProxy(now, now.Add(-20*time.Minute)))
	assert.Equal(t, 10, r.engagementProxy(now, now.Add(-2*time.Hour)))
}

func TestReddit_SpamFiltering(t *testing.T) {
	published := time.Now().UTC().Format(time.RFC3339)
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		entries := strings.Join([]string{
			feedEntry("t3_ok", "a thoughtful analysis of the current cycle", "fine", published),
			feedEntry("t3_spam", "click here for guaranteed profit today friends", "spammer", published),
			feedEntry("t3_caps", "THIS IS GOING STRAIGHT UP FOREVER", "shouter", published),
			feedEntry("t3_short", "gm frens", "minimal", published),
		}, "\n")
		fmt.Fprintf(w, feedTemplate, entries)
	})

	r, _ := newTestReddit(t, handler, "bitcoin")
	posts, err := r.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, posts, 1, "spam, shouting, and too-short titles are dropped at the adapter")
	assert.Equal(t, "t3_ok", posts[0].ID)
}

func TestReddit_PartialSubredditFailure(t *testing.T) {
	published := time.Now().UTC().Format(time.RFC3339)
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.URL.Path, "deadsub") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, feedTemplate, feedEntry("t3_live", "the healthy subreddit still delivers content", "ok", published))
	})

	r, _ := newTestReddit(t, handler, "bitcoin", "deadsub")
	posts, err := r.Fetch(context.Background())
	require.NoError(t, err, "one failing subreddit must not fail the fetch")
	assert.Len(t, posts, 1)
}

func TestReddit_AllSubredditsFailingReturnsError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	r, _ := newTestReddit(t, handler, "bitcoin", "ethtrader")
	posts, err := r.Fetch(context.Background())
	assert.Error(t, err)
	assert.Empty(t, posts)
}

func TestReddit_CircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	r, _ := newTestReddit(t, handler, "bitcoin")

	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := r.Fetch(context.Background())
		require.Error(t, err)
	}
	hitsBeforeOpen := hits

	// Breaker is now open: further fetches fail fast without touching HTTP.
	_, err := r.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, hitsBeforeOpen, hits, "open breaker must not issue requests")
}
