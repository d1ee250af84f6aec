// Package calendar normalizes heterogeneous timestamps into canonical day
// keys: UTC-midnight epoch seconds for a calendar date.
package calendar

import (
	"time"
)

// NormalizeDay maps an instant to the UTC-midnight epoch seconds of its
// calendar date. The date is read in the instant's own location (the process
// uses a single local calendar for "today"), then pinned to UTC midnight so
// two instants on the same date always produce the same key.
func NormalizeDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// BuildActivitySet converts raw calendar entries into per-day activity flags.
// Keys are trusted as canonical day keys already and are not re-normalized;
// converting them twice would shift lookups across the day boundary.
func BuildActivitySet(entries map[int64]int64) map[int64]bool {
	active := make(map[int64]bool, len(entries))
	for day, count := range entries {
		if count != 0 {
			active[day] = true
		}
	}
	return active
}
