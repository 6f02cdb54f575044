package analytics

import "time"

// ActivitySummary holds scalar statistics derived from a normalized calendar.
// The calendar itself stays authoritative; a summary is recomputed wholesale
// on every pass and never persisted as a source of truth.
type ActivitySummary struct {
	TotalActivity    int     `json:"total_activity"`
	TotalDaysActive  int     `json:"total_days_active"`
	MaxDailyActivity int     `json:"max_daily_activity"`
	AvgDailyActivity float64 `json:"avg_daily_activity"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
}

// Summarize scans the day sequence once and derives all summary values.
func Summarize(days []ActivityDay, today time.Time) ActivitySummary {
	var s ActivitySummary
	for _, day := range days {
		s.TotalActivity += day.Count
		if day.Count > 0 {
			s.TotalDaysActive++
		}
		if day.Count > s.MaxDailyActivity {
			s.MaxDailyActivity = day.Count
		}
	}
	if s.TotalDaysActive > 0 {
		s.AvgDailyActivity = float64(s.TotalActivity) / float64(s.TotalDaysActive)
	}
	s.CurrentStreak, s.LongestStreak = CalcStreaks(days, today)
	return s
}
