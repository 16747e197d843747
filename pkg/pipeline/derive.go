package pipeline

import (
	"fmt"
	"time"

	"github.com/mfbx9da4/meanwhile/pkg/calendar"
	"github.com/mfbx9da4/meanwhile/pkg/config"
)

// Derived is the output of the derive stage: the day set plus milestones
// resolved to day indices, all recomputed from scratch on every run.
type Derived struct {
	Start      time.Time
	TotalDays  int
	TodayIndex int // -1 when today falls outside the range
	Days       []calendar.Day
	Points     []PointMilestone
	Ranges     []RangeMilestone
}

// PointMilestone is a single-day milestone resolved to its day index.
type PointMilestone struct {
	Index int
	Label string
	Emoji string
	Color string
}

// RangeMilestone is a two-day milestone resolved to its index span.
// End is inclusive.
type RangeMilestone struct {
	Start int
	End   int
	Label string
	Emoji string
	Color string
}

// Derive turns the document and the current date into day and milestone
// data. The document must already be validated; date parse failures here
// indicate a programming error upstream and are still reported.
//
// Point milestones annotate their day; range milestones do not touch the
// day set, they exist only for the gantt path.
func Derive(doc config.Document, today string) (*Derived, error) {
	start, err := doc.Start()
	if err != nil {
		return nil, fmt.Errorf("parse startDate: %w", err)
	}
	totalDays, err := doc.TotalDays()
	if err != nil {
		return nil, err
	}
	todayDate, err := time.Parse(config.DateFormat, today)
	if err != nil {
		return nil, fmt.Errorf("parse today: %w", err)
	}

	d := &Derived{
		Start:     start,
		TotalDays: totalDays,
		Days:      calendar.Days(start, totalDays, todayDate),
	}
	d.TodayIndex = calendar.TodayIndex(d.Days)

	for _, m := range doc.Milestones {
		date, err := time.Parse(config.DateFormat, m.Date)
		if err != nil {
			return nil, fmt.Errorf("parse milestone date %q: %w", m.Date, err)
		}
		idx := calendar.DayIndex(date, start)

		if m.IsRange() {
			end, err := time.Parse(config.DateFormat, m.EndDate)
			if err != nil {
				return nil, fmt.Errorf("parse milestone endDate %q: %w", m.EndDate, err)
			}
			d.Ranges = append(d.Ranges, RangeMilestone{
				Start: idx,
				End:   calendar.DayIndex(end, start),
				Label: m.Label,
				Emoji: m.Emoji,
				Color: m.Color,
			})
			continue
		}

		d.Points = append(d.Points, PointMilestone{
			Index: idx,
			Label: m.Label,
			Emoji: m.Emoji,
			Color: m.Color,
		})
		annotation := m.Emoji
		if annotation == "" {
			annotation = m.Label
		}
		calendar.Annotate(d.Days, idx, annotation, m.Color)
	}

	return d, nil
}
