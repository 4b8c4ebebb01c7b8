package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

// RollingDeduplicator filters posts against a bounded hash window that
// persists across pipeline cycles, so a post re-fetched on a later cycle is
// dropped even though the batch-local Aggregator has long forgotten it.
//
// SHA-256 is used here for collision resistance across the large persistent
// window; the Aggregator gets away with a cheaper hash because its scope is a
// single batch.
type RollingDeduplicator struct {
	mu         sync.Mutex
	windowSize int
	minWords   int
	order      []string
	seen       map[string]struct{}
}

func NewRollingDeduplicator(windowSize, minWords int) *RollingDeduplicator {
	return &RollingDeduplicator{
		windowSize: windowSize,
		minWords:   minWords,
		seen:       make(map[string]struct{}),
	}
}

func contentHash(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Filter drops posts whose text is too short or whose normalized-text hash
// is already in the window. Survivors are admitted to the window; afterwards
// the oldest hashes are evicted until the window fits its capacity.
func (d *RollingDeduplicator) Filter(posts []domain.Post) []domain.Post {
	d.mu.Lock()
	defer d.mu.Unlock()

	survivors := make([]domain.Post, 0, len(posts))

	for _, post := range posts {
		// Coarse pre-filter; the cleaner applies the authoritative one later.
		if len(strings.Fields(post.Text)) < d.minWords {
			continue
		}

		h := contentHash(post.Text)
		if _, dup := d.seen[h]; dup {
			continue
		}

		d.order = append(d.order, h)
		d.seen[h] = struct{}{}
		survivors = append(survivors, post)
	}

	// FIFO eviction down to capacity.
	for len(d.order) > d.windowSize {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}

	return survivors
}

// Len returns the number of hashes currently held in the window.
func (d *RollingDeduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
