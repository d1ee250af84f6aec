package constants

import "time"

// Problem catalog constants. These track the external problem catalog and are
// not derived from anything we fetch.
const (
	TotalProblems = 3000

	MaxEasyProblems   = 800
	MaxMediumProblems = 1700
	MaxHardProblems   = 700
)

// Rank score weights per difficulty.
const (
	EasyWeight   = 50
	MediumWeight = 100
	HardWeight   = 200
)

const (
	// StreakStripDays is the length of the rolling display strip.
	StreakStripDays = 8

	DaySeconds = 86400
)

const (
	ExternalAPITimeout = 10 * time.Second
	UserFetchTimeout   = 30 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)
