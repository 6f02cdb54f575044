package analytics

import "time"

// ActivityDay is one calendar day of aggregated platform activity.
// A zero Date marks a padding cell inserted for week-grid alignment.
type ActivityDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
	Level int       `json:"level"`
}

// dateOnly truncates a timestamp to a UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeCalendar turns a sparse (possibly empty) list of day records into a
// dense, ascending sequence with exactly one entry per calendar day of year.
// Missing days are filled with zero activity so downstream consumers never see
// gaps or divide by zero. Duplicate dates are last-write-wins. Records outside
// the year are dropped.
func NormalizeCalendar(raw []ActivityDay, year int, cfg Config) []ActivityDay {
	counts := make(map[time.Time]int, len(raw))
	for _, day := range raw {
		if day.Date.IsZero() || day.Date.UTC().Year() != year {
			continue
		}
		counts[dateOnly(day.Date)] = day.Count
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	dense := make([]ActivityDay, 0, 366)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		count := counts[d]
		if count < 0 {
			count = 0
		}
		dense = append(dense, ActivityDay{
			Date:  d,
			Count: count,
			Level: cfg.LevelForCount(count),
		})
	}
	return dense
}

// PadToWeekGrid prepends empty padding cells so the first day of the sequence
// lands on its weekday column in a Sunday-first week grid.
func PadToWeekGrid(days []ActivityDay) []ActivityDay {
	if len(days) == 0 {
		return days
	}
	offset := int(days[0].Date.Weekday())
	if offset == 0 {
		return days
	}
	padded := make([]ActivityDay, 0, offset+len(days))
	for i := 0; i < offset; i++ {
		padded = append(padded, ActivityDay{})
	}
	return append(padded, days...)
}
