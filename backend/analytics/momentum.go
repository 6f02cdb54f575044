package analytics

import "time"

// Productivity trend classifications.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// CodingMomentum captures how the user's activity is moving over time.
type CodingMomentum struct {
	CurrentStreak          int     `json:"current_streak"`
	LongestStreak          int     `json:"longest_streak"`
	AverageProblemsPerWeek float64 `json:"average_problems_per_week"`
	ProductivityTrend      string  `json:"productivity_trend"`
}

// CalcMomentum compares the recent-window daily average against the prior
// baseline window with a tolerance band and classifies the trend. The average
// problems per week is taken over both windows combined.
func CalcMomentum(days []ActivityDay, today time.Time, cfg Config) CodingMomentum {
	m := CodingMomentum{ProductivityTrend: TrendStable}
	m.CurrentStreak, m.LongestStreak = CalcStreaks(days, today)

	cutoff := dateOnly(today)
	recentStart := cutoff.AddDate(0, 0, -(cfg.RecentWindowDays - 1))
	baselineStart := recentStart.AddDate(0, 0, -cfg.BaselineWindowDays)

	var recentSum, baselineSum int
	for _, day := range days {
		if day.Date.After(cutoff) || day.Date.Before(baselineStart) {
			continue
		}
		if day.Date.Before(recentStart) {
			baselineSum += day.Count
		} else {
			recentSum += day.Count
		}
	}

	recentAvg := float64(recentSum) / float64(cfg.RecentWindowDays)
	baselineAvg := float64(baselineSum) / float64(cfg.BaselineWindowDays)

	totalDays := cfg.RecentWindowDays + cfg.BaselineWindowDays
	m.AverageProblemsPerWeek = float64(recentSum+baselineSum) / float64(totalDays) * 7

	switch {
	case recentAvg > baselineAvg*(1+cfg.TrendTolerance):
		m.ProductivityTrend = TrendIncreasing
	case recentAvg < baselineAvg*(1-cfg.TrendTolerance):
		m.ProductivityTrend = TrendDecreasing
	}
	return m
}
