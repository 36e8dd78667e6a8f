// Package history persists the outcome of the most recent session for every played file.
package history

import (
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/quickplay-cli/quickplay/filesystem"
	"github.com/quickplay-cli/quickplay/session"
	"github.com/quickplay-cli/quickplay/where"
	"golang.org/x/exp/slices"
)

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record keyed by absolute path.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// List returns the records, most recently played first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(saved))
	for _, r := range saved {
		records = append(records, r)
	}

	slices.SortFunc(records, func(a, b *Record) int {
		return b.PlayedAt.Compare(a.PlayedAt)
	})
	return records, nil
}

// Save stores the outcome of result, replacing the previous record for the same file
// and bumping its play count.
func Save(result *session.Result, engine string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newRecord(result, engine)
	if existing, ok := saved[record.Path]; ok {
		record.Count = existing.Count + 1
	}
	saved[record.Path] = record

	return cacher.Set(saved)
}

// Remove deletes the record for path, if any.
func Remove(path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, absolute(path))
	return cacher.Set(saved)
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func newRecord(result *session.Result, engine string) *Record {
	playedAt := result.EndedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	return &Record{
		Path:     absolute(result.Source.Path()),
		Kind:     result.Source.Kind().String(),
		Strategy: result.Strategy.String(),
		State:    result.State.String(),
		Engine:   engine,
		PlayedAt: playedAt,
		Count:    1,
	}
}
