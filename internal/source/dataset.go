package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
	oracleerrors "github.com/kingsley-judewin/the-sentiment-oracle/internal/errors"
)

// Dataset replays a Sentiment140-style CSV as a simulated live stream. The
// file is loaded once; each fetch returns the next window of rows with a
// rolling pointer that wraps around, so repeated cycles see different posts.
//
// Expected CSV shape (no header): label, id, date, query, user, text.
type Dataset struct {
	path       string
	sampleSize int
	clock      clockwork.Clock

	loadOnce sync.Once
	loadErr  error
	texts    []string

	mu     sync.Mutex
	cursor int
}

func NewDataset(path string, sampleSize int, clock clockwork.Clock) *Dataset {
	return &Dataset{
		path:       path,
		sampleSize: sampleSize,
		clock:      clock,
	}
}

func (d *Dataset) Name() string {
	return "dataset"
}

func (d *Dataset) Fetch(ctx context.Context) ([]domain.Post, error) {
	d.loadOnce.Do(d.load)
	if d.loadErr != nil {
		return nil, oracleerrors.SourceFetch(d.Name(), d.loadErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, oracleerrors.SourceFetch(d.Name(), err)
	}

	d.mu.Lock()
	start := d.cursor
	d.cursor = (d.cursor + d.sampleSize) % len(d.texts)
	d.mu.Unlock()

	now := d.clock.Now().UTC()
	posts := make([]domain.Post, 0, d.sampleSize)
	for i := 0; i < d.sampleSize; i++ {
		idx := (start + i) % len(d.texts)
		posts = append(posts, domain.Post{
			ID:         fmt.Sprintf("dataset-%d", idx),
			Text:       d.texts[idx],
			Engagement: engagementVariance(idx),
			Timestamp:  now,
			Source:     d.Name(),
		})
	}
	return posts, nil
}

func (d *Dataset) load() {
	f, err := os.Open(d.path)
	if err != nil {
		d.loadErr = fmt.Errorf("opening dataset: %w", err)
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var texts []string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if len(record) < 6 {
			continue
		}
		if text := record[5]; text != "" {
			texts = append(texts, text)
		}
	}

	if len(texts) == 0 {
		d.loadErr = fmt.Errorf("dataset %s contains no usable rows", d.path)
		return
	}

	d.texts = texts
	slog.Info("Dataset loaded", "path", d.path, "rows", len(texts))
}

// engagementVariance derives a deterministic per-row engagement proxy in
// [1, 50] so dataset posts are not all weighted identically.
func engagementVariance(idx int) int {
	return 1 + (idx*31)%50
}
