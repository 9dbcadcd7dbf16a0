// Package catalog reads raw item records from a source and turns them into
// the deduplicated, ordered catalog of items keyed by normalized id.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/meur/unlockforge/internal/models"
)

// Loader builds the catalog from a Source.
type Loader struct {
	Source     Source
	Normalizer Normalizer
	Logger     *zap.Logger
}

// Stats summarizes one load.
type Stats struct {
	Records    int
	Items      int
	Misses     int
	Duplicates int
}

// Load fetches the source and returns items in first-seen order. Records
// whose name is not an item, and later records repeating an id, are skipped.
func (l *Loader) Load(ctx context.Context) ([]models.Item, Stats, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := l.Source.Fetch(ctx)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Records: len(records)}
	seen := make(map[int]struct{}, len(records))
	items := make([]models.Item, 0, len(records))

	for _, record := range records {
		id, ok := l.Normalizer.Normalize(record.Name)
		if !ok {
			stats.Misses++
			logger.Debug("skipping record that is not an item", zap.String("name", record.Name))
			continue
		}
		if _, dup := seen[id]; dup {
			stats.Duplicates++
			logger.Debug("skipping duplicate item", zap.Int("id", id), zap.String("name", record.Name))
			continue
		}
		seen[id] = struct{}{}
		items = append(items, models.Item{
			ID:        id,
			Points:    record.Points,
			Expansion: record.Expansion,
			Image:     record.Image,
			XWS:       record.XWS,
		})
	}
	stats.Items = len(items)

	logger.Info("catalog loaded",
		zap.Stringer("source", l.Source),
		zap.Int("records", stats.Records),
		zap.Int("items", stats.Items),
		zap.Int("misses", stats.Misses),
		zap.Int("duplicates", stats.Duplicates),
	)
	return items, stats, nil
}
