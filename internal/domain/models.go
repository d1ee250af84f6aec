package domain

import (
	"time"
)

// UserRecord is the derived view of one tracked user. It is built atomically
// from the three raw payloads and never mutated after publication.
type UserRecord struct {
	Username  string
	AvatarURL string

	Easy   int
	Medium int
	Hard   int
	Solved int

	// Last8Days holds activity flags for the rolling strip, oldest (7 days
	// ago) to newest (today).
	Last8Days []bool

	CurrentStreak int

	// WeekPattern holds activity flags Monday..Sunday of the current ISO week.
	WeekPattern   []bool
	ThisWeekCount int

	CompletionPercent int
	RankScore         int

	FetchedAt time.Time
}
