// Package metrics derives the display metrics for one user from a normalized
// day-activity set and the solved-problem breakdown. All functions are pure.
package metrics

import (
	"math"
	"sort"
	"time"

	"streak-tracker/internal/calendar"
	"streak-tracker/internal/constants"
)

// RollingWindow produces activity flags for the length-1 days before today
// through today inclusive, oldest first.
func RollingWindow(active map[int64]bool, today time.Time, length int) []bool {
	window := make([]bool, length)
	for i := 0; i < length; i++ {
		day := calendar.NormalizeDay(today.AddDate(0, 0, -(length - 1 - i)))
		window[i] = active[day]
	}
	return window
}

// WeekPattern produces Monday..Sunday activity flags for the ISO week
// containing today.
func WeekPattern(active map[int64]bool, today time.Time) []bool {
	offset := int(today.Weekday()) - 1
	if today.Weekday() == time.Sunday {
		offset = 6
	}

	pattern := make([]bool, 7)
	for i := 0; i < 7; i++ {
		day := calendar.NormalizeDay(today.AddDate(0, 0, i-offset))
		pattern[i] = active[day]
	}
	return pattern
}

// CountActive returns the number of true flags in a pattern.
func CountActive(pattern []bool) int {
	n := 0
	for _, ok := range pattern {
		if ok {
			n++
		}
	}
	return n
}

// CurrentStreak returns the length of the maximal run of consecutive active
// days ending at today or, when today has no activity yet, at yesterday. A
// streak is not broken solely because the user has not acted today.
func CurrentStreak(active map[int64]bool, today time.Time) int {
	if len(active) == 0 {
		return 0
	}

	days := make([]int64, 0, len(active))
	for day := range active {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	todayKey := calendar.NormalizeDay(today)
	cursor := todayKey
	if days[0] < todayKey {
		cursor = todayKey - constants.DaySeconds
	}

	streak := 0
	for _, day := range days {
		if day > cursor {
			continue
		}
		if day < cursor {
			break
		}
		streak++
		cursor -= constants.DaySeconds
	}
	return streak
}

// CompletionPercent returns the solved count as a rounded percentage of the
// catalog size. Not clamped; a count above the catalog yields more than 100.
func CompletionPercent(solved int) int {
	return int(math.Round(float64(solved) / float64(constants.TotalProblems) * 100))
}

// RankScore is the difficulty-weighted leaderboard score.
func RankScore(easy, medium, hard int) int {
	return easy*constants.EasyWeight + medium*constants.MediumWeight + hard*constants.HardWeight
}
