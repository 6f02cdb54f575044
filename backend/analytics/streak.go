package analytics

import (
	"sort"
	"time"
)

// CalcStreaks computes the current streak (consecutive active days ending
// today) and the longest streak anywhere in the sequence. A day is active when
// its count is positive; a date absent from the sequence is inactive, so
// sparse calendars (the judge client emits accepted-per-day records only) get
// the same answer as dense ones. Input order does not matter. Duplicate dates
// are last-write-wins and padding cells with a zero date are ignored. If today
// itself is inactive the current streak is 0. An empty sequence yields 0 for
// both.
func CalcStreaks(days []ActivityDay, today time.Time) (current, longest int) {
	active := make(map[time.Time]bool, len(days))
	for _, day := range days {
		if day.Date.IsZero() {
			continue
		}
		active[dateOnly(day.Date)] = day.Count > 0
	}

	// Current: walk backward one calendar day at a time from today.
	for d := dateOnly(today); active[d]; d = d.AddDate(0, 0, -1) {
		current++
	}

	// Longest: runs of consecutive dates over the sorted active days.
	dates := make([]time.Time, 0, len(active))
	for d, ok := range active {
		if ok {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	run := 0
	for i, d := range dates {
		if i > 0 && d.Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}
