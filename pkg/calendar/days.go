package calendar

import "time"

// Day is one calendar day in the tracked range. The full set is derived
// from (start, totalDays, today) and never mutated in place; a new day
// rolling over is handled by re-deriving the set with the new today.
type Day struct {
	Index      int       `json:"index"`
	Date       time.Time `json:"date"`
	Passed     bool      `json:"passed"`
	Today      bool      `json:"today"`
	Annotation string    `json:"annotation,omitempty"`
	Color      string    `json:"color,omitempty"`
	OddWeek    bool      `json:"odd_week"`
	EvenWeek   bool      `json:"even_week"`
}

// Days derives the immutable day set for the range. Indices are
// contiguous from 0; at most one day is marked Today (none when today
// falls outside the range). Odd/even week flags alternate by ISO week
// so adjacent weeks can be shaded differently.
func Days(start time.Time, totalDays int, today time.Time) []Day {
	if totalDays <= 0 {
		return nil
	}

	todayIdx := DayIndex(today, start)
	days := make([]Day, totalDays)
	for i := range days {
		date := start.AddDate(0, 0, i)
		_, week := date.ISOWeek()
		days[i] = Day{
			Index:    i,
			Date:     date,
			Passed:   i < todayIdx,
			Today:    i == todayIdx,
			OddWeek:  week%2 == 1,
			EvenWeek: week%2 == 0,
		}
	}
	return days
}

// Annotate sets the annotation and color of the day at idx, ignoring
// indices outside the range. Point milestones are overlaid onto the day
// set this way; the day slice is modified in place before first use.
func Annotate(days []Day, idx int, annotation, color string) {
	if idx < 0 || idx >= len(days) {
		return
	}
	days[idx].Annotation = annotation
	if color != "" {
		days[idx].Color = color
	}
}

// TodayIndex returns the index of the day marked Today, or -1 when today
// lies outside the tracked range.
func TodayIndex(days []Day) int {
	for _, d := range days {
		if d.Today {
			return d.Index
		}
	}
	return -1
}
