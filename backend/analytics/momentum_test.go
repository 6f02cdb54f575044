package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMomentumIncreasing(t *testing.T) {
	today := time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC)
	counts := make([]int, 28)
	for i := range counts {
		if i < 14 {
			counts[i] = 1 // baseline window
		} else {
			counts[i] = 3 // recent window
		}
	}
	m := CalcMomentum(daysEndingAt(today, counts), today, DefaultConfig)
	assert.Equal(t, TrendIncreasing, m.ProductivityTrend)
	assert.InDelta(t, 14.0, m.AverageProblemsPerWeek, 1e-9)
}

func TestMomentumDecreasing(t *testing.T) {
	today := time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC)
	counts := make([]int, 28)
	for i := range counts {
		if i < 14 {
			counts[i] = 4
		} else {
			counts[i] = 1
		}
	}
	m := CalcMomentum(daysEndingAt(today, counts), today, DefaultConfig)
	assert.Equal(t, TrendDecreasing, m.ProductivityTrend)
}

func TestMomentumStableWithinTolerance(t *testing.T) {
	today := time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC)
	counts := make([]int, 28)
	for i := range counts {
		counts[i] = 2
	}
	// Recent average of 2 against baseline 2 sits inside the 15% band.
	m := CalcMomentum(daysEndingAt(today, counts), today, DefaultConfig)
	assert.Equal(t, TrendStable, m.ProductivityTrend)
}

func TestMomentumSparseCalendar(t *testing.T) {
	// The judge calendar holds accepted-per-day records only; the streaks must
	// treat the missing days as inactive instead of bridging the gap.
	today := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	days := []ActivityDay{
		{Date: time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), Count: 1},
	}

	m := CalcMomentum(days, today, DefaultConfig)
	assert.Equal(t, 0, m.CurrentStreak)
	assert.Equal(t, 1, m.LongestStreak)
	// The Aug 20 solve sits in the recent window against an idle baseline.
	assert.Equal(t, TrendIncreasing, m.ProductivityTrend)
}

func TestMomentumNoActivityIsStable(t *testing.T) {
	today := time.Now().UTC()
	m := CalcMomentum(nil, today, DefaultConfig)
	assert.Equal(t, TrendStable, m.ProductivityTrend)
	assert.Equal(t, 0.0, m.AverageProblemsPerWeek)
}

func TestPredictNextMilestone(t *testing.T) {
	mastery := RankTopics(map[string]int{"Arrays": 75, "DP": 20, "Graphs": 8}, 0, DefaultConfig)
	momentum := CodingMomentum{AverageProblemsPerWeek: 5}

	rec := Predict(mastery, momentum, DefaultConfig)
	assert.Equal(t, "Advanced", rec.CurrentLevel)
	assert.Equal(t, "Expert", rec.NextLevel)
	assert.Equal(t, 15, rec.ProblemsToGo) // 90% of ceiling 100 is 90 solved
	assert.InDelta(t, 3.0, rec.EstimatedWeeks, 1e-9)
	assert.Equal(t, "Graphs", rec.NextTopic)
	assert.Equal(t, DefaultConfig.Version, rec.ThresholdVersion)
}

func TestPredictAtTopTier(t *testing.T) {
	mastery := RankTopics(map[string]int{"Arrays": 100}, 0, DefaultConfig)
	rec := Predict(mastery, CodingMomentum{}, DefaultConfig)
	assert.Equal(t, "Expert", rec.CurrentLevel)
	assert.Empty(t, rec.NextLevel)
	assert.Equal(t, 0, rec.ProblemsToGo)
}

func TestPredictEmptyMastery(t *testing.T) {
	rec := Predict(nil, CodingMomentum{}, DefaultConfig)
	assert.Empty(t, rec.NextTopic)
	assert.Empty(t, rec.CurrentLevel)
}
