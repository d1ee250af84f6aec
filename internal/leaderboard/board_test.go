package leaderboard

import (
	"testing"

	"streak-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestBoard() *Board {
	return NewBoard(zerolog.Nop())
}

func TestUpsert_FirstWriteWins(t *testing.T) {
	board := newTestBoard()

	assert.True(t, board.Upsert(domain.UserRecord{Username: "Bob", Solved: 10}))
	assert.False(t, board.Upsert(domain.UserRecord{Username: "bob", Solved: 99}))

	assert.Equal(t, 1, board.Len())

	rec, ok := board.Get("BOB")
	assert.True(t, ok)
	assert.Equal(t, "Bob", rec.Username)
	assert.Equal(t, 10, rec.Solved, "duplicate must not overwrite the first record")
}

func TestGet_Missing(t *testing.T) {
	board := newTestBoard()

	_, ok := board.Get("nobody")
	assert.False(t, ok)
}

func TestSortedView_DescendingByRankScore(t *testing.T) {
	board := newTestBoard()
	board.Upsert(domain.UserRecord{Username: "low", RankScore: 100})
	board.Upsert(domain.UserRecord{Username: "high", RankScore: 900})
	board.Upsert(domain.UserRecord{Username: "mid", RankScore: 500})

	view := board.SortedView()

	assert.Equal(t, []string{"high", "mid", "low"}, usernames(view))
}

func TestSortedView_StableOnTies(t *testing.T) {
	board := newTestBoard()
	board.Upsert(domain.UserRecord{Username: "a", RankScore: 500})
	board.Upsert(domain.UserRecord{Username: "b", RankScore: 500})
	board.Upsert(domain.UserRecord{Username: "c", RankScore: 700})

	view := board.SortedView()

	// Ties keep insertion order.
	assert.Equal(t, []string{"c", "a", "b"}, usernames(view))
}

func TestSortedView_DoesNotAliasBoardState(t *testing.T) {
	board := newTestBoard()
	board.Upsert(domain.UserRecord{Username: "a", RankScore: 1})

	view := board.SortedView()
	view[0].Username = "mutated"

	rec, ok := board.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", rec.Username)
}

func usernames(records []domain.UserRecord) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Username)
	}
	return names
}
