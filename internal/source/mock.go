package source

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

type mockPost struct {
	text       string
	engagement int
	ageMinutes int
	author     string
}

// Fixed panel spanning strong positive, strong negative, and mixed posts so
// downstream stages always see both polarities in mock mode.
var mockPanel = []mockPost{
	{"This project is absolutely incredible, the team delivers every single time!", 342, 2, "crypto_whale_99"},
	{"Just went all in, the fundamentals are rock solid and the roadmap is clear", 218, 5, "defi_degen"},
	{"The community around this token is one of the best I have ever seen", 189, 8, "nft_collector"},
	{"Massive partnership announcement coming soon, bullish vibes everywhere", 410, 1, "alpha_hunter"},
	{"I love how transparent the devs are, weekly updates and real progress", 156, 12, "hodler_4_life"},
	{"This is a complete scam, the devs are dumping on retail investors", 287, 3, "bear_patrol"},
	{"Price is crashing hard and the team has gone completely silent", 198, 6, "exit_liquidity"},
	{"Worst investment I have ever made, the roadmap is pure fantasy", 134, 9, "rekt_again"},
	{"The tokenomics are broken and whales control everything, stay away", 221, 4, "chain_skeptic"},
	{"Volume is up today but I am not sure where this is heading", 87, 7, "fence_sitter"},
	{"Interesting development with the new staking mechanism, watching closely", 64, 11, "quiet_observer"},
	{"The chart looks the same as it did last week, nothing new here", 45, 15, "ta_wizard"},
}

// Mock is the always-available synthetic source used for development and as
// the safe fallback for misconfigured ingestion modes.
type Mock struct {
	clock clockwork.Clock
}

func NewMock(clock clockwork.Clock) *Mock {
	return &Mock{clock: clock}
}

func (m *Mock) Name() string {
	return "mock"
}

func (m *Mock) Fetch(_ context.Context) ([]domain.Post, error) {
	now := m.clock.Now()
	posts := make([]domain.Post, 0, len(mockPanel))
	for _, p := range mockPanel {
		posts = append(posts, domain.Post{
			ID:         uuid.NewString(),
			Text:       p.text,
			Engagement: p.engagement,
			Timestamp:  now.Add(-time.Duration(p.ageMinutes) * time.Minute),
			Author:     p.author,
			Source:     "mock",
		})
	}
	return posts, nil
}
