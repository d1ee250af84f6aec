// Package leaderboard holds the in-memory collection of derived user records
// and produces the sorted view used for display. State lives for the process
// lifetime only.
package leaderboard

import (
	"sort"
	"strings"
	"sync"

	"streak-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// Board serializes all access to the record collection. Concurrent fetch
// completions insert through Upsert; readers get copies.
type Board struct {
	mu      sync.RWMutex
	records []domain.UserRecord
	logger  zerolog.Logger
}

func NewBoard(logger zerolog.Logger) *Board {
	return &Board{logger: logger}
}

// Upsert admits a record unless one with the same username (case-insensitive)
// already exists. First write wins; duplicates are dropped, not merged.
// Returns whether the record was admitted.
func (b *Board) Upsert(rec domain.UserRecord) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.records {
		if strings.EqualFold(existing.Username, rec.Username) {
			b.logger.Debug().Str("username", rec.Username).Msg("duplicate username, keeping first record")
			return false
		}
	}

	b.records = append(b.records, rec)
	b.logger.Info().Str("username", rec.Username).Int("rank_score", rec.RankScore).Int("board_size", len(b.records)).Msg("record admitted")
	return true
}

// Get returns the record for a username, case-insensitively.
func (b *Board) Get(username string) (domain.UserRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, rec := range b.records {
		if strings.EqualFold(rec.Username, username) {
			return rec, true
		}
	}
	return domain.UserRecord{}, false
}

// SortedView returns the records ordered by rank score descending. The sort
// is stable: equal scores keep insertion order.
func (b *Board) SortedView() []domain.UserRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	view := make([]domain.UserRecord, len(b.records))
	copy(view, b.records)

	sort.SliceStable(view, func(i, j int) bool {
		return view[i].RankScore > view[j].RankScore
	})
	return view
}

// Len returns the number of tracked users.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}
