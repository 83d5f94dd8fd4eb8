package cmd

import (
	"fmt"
	"time"

	"github.com/fightlab/go-fight-metrics/internal/profiler"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

// loadProfiler reads the full fighter and bout collections out of the store
// and builds a profiler over them. All profiling I/O happens here, up
// front; profile and matchup computation itself never touches the database.
func loadProfiler(db *storage.DB) (*profiler.Profiler, error) {
	fighters, err := db.AllFighters()
	if err != nil {
		return nil, fmt.Errorf("query fighters: %w", err)
	}
	bouts, err := db.AllBouts()
	if err != nil {
		return nil, fmt.Errorf("query bouts: %w", err)
	}
	return profiler.New(fighters, bouts), nil
}

// parseAsOf interprets an optional --as-of value. Empty means now.
func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
