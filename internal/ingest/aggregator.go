package ingest

import (
	"hash/fnv"
	"sort"
	"strings"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

// Aggregator is the stateless per-batch stabilizer: sort by engagement,
// collapse textual duplicates keeping the highest-engagement copy, and
// truncate to the batch cap.
type Aggregator struct {
	maxPosts int
}

func NewAggregator(maxPosts int) Aggregator {
	return Aggregator{maxPosts: maxPosts}
}

// batchHash is a fast non-cryptographic hash over normalized text. Batch
// scope only; the cross-cycle window uses SHA-256.
func batchHash(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	return h.Sum64()
}

// Aggregate returns a stabilized copy of the batch. The input slice is never
// mutated. The sort is stable, so duplicate collapse keeps the
// highest-engagement copy and ties preserve arrival order.
func (a Aggregator) Aggregate(posts []domain.Post) []domain.Post {
	sorted := make([]domain.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Engagement > sorted[j].Engagement
	})

	seen := make(map[uint64]struct{}, len(sorted))
	unique := make([]domain.Post, 0, len(sorted))
	for _, post := range sorted {
		h := batchHash(post.Text)
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		unique = append(unique, post)
	}

	if len(unique) > a.maxPosts {
		unique = unique[:a.maxPosts]
	}
	return unique
}
