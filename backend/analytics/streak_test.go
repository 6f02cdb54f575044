package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// daysEndingAt builds a consecutive run of days whose last entry is today.
func daysEndingAt(today time.Time, counts []int) []ActivityDay {
	days := make([]ActivityDay, len(counts))
	for i, count := range counts {
		days[i] = ActivityDay{
			Date:  dateOnly(today).AddDate(0, 0, i-len(counts)+1),
			Count: count,
			Level: DefaultConfig.LevelForCount(count),
		}
	}
	return days
}

func TestStreaksActiveRunEndingToday(t *testing.T) {
	today := time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)
	days := daysEndingAt(today, []int{0, 3, 0, 5, 5, 5, 5})

	current, longest := CalcStreaks(days, today)
	assert.Equal(t, 4, current)
	assert.Equal(t, 4, longest)
}

func TestStreaksInactiveToday(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	days := daysEndingAt(today, []int{2, 0, 3, 0, 4, 0})

	current, longest := CalcStreaks(days, today)
	assert.Equal(t, 0, current)
	assert.Equal(t, 1, longest)
}

func TestStreaksAllZero(t *testing.T) {
	today := time.Now().UTC()
	days := daysEndingAt(today, []int{0, 0, 0, 0})

	current, longest := CalcStreaks(days, today)
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestStreaksEmptySequence(t *testing.T) {
	current, longest := CalcStreaks(nil, time.Now())
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestStreaksIgnoreFutureDays(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	days := daysEndingAt(today.AddDate(0, 0, 2), []int{4, 4, 4, 1, 1})

	// The last two days are in the future relative to today.
	current, _ := CalcStreaks(days, today)
	assert.Equal(t, 3, current)
}

func TestStreaksSparseCalendar(t *testing.T) {
	// Accepted-per-day records only, months apart: the idle gap between them
	// must not read as one consecutive run, and an inactive today means 0.
	today := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	days := []ActivityDay{
		{Date: time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), Count: 1},
	}

	current, longest := CalcStreaks(days, today)
	assert.Equal(t, 0, current)
	assert.Equal(t, 1, longest)
}

func TestStreaksSparseUnorderedRun(t *testing.T) {
	today := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	days := []ActivityDay{
		{Date: time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC), Count: 2},
		{Date: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), Count: 1},
	}

	current, longest := CalcStreaks(days, today)
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, longest)
}

func TestLongestAtLeastCurrent(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	for _, counts := range [][]int{
		{1, 1, 1},
		{0, 1, 0, 1, 1},
		{5, 0, 0, 2},
		{},
	} {
		days := daysEndingAt(today, counts)
		current, longest := CalcStreaks(days, today)
		assert.GreaterOrEqual(t, longest, current, "counts=%v", counts)
	}
}
