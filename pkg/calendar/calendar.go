// Package calendar provides pure date and day-index arithmetic for the
// tracked pregnancy range.
//
// All positions in the layout engine are expressed as zero-based day
// indices: whole-day offsets from the range's start date. This package
// owns the conversions between dates and indices, the two month
// partitions (real calendar months and the nine equal "pregnancy
// months"), and the week conventions used by the calendar views.
//
// # Week Conventions
//
// The weekly view starts weeks on Sunday; the monthly view starts them
// on Monday. A view must pick exactly one [Convention] and use it for
// every cell it places - mixing conventions within one view misaligns
// columns. The Convention type exists so that choice is explicit at the
// call site rather than implied by which helper was reached for.
package calendar

import (
	"math"
	"time"
)

// PregnancyMonths is the number of equal partitions the tracked range is
// divided into, independent of calendar months.
const PregnancyMonths = 9

// hoursPerDay is used for ceiling day arithmetic. Document dates parse
// as UTC midnights, so every day is exactly 24 hours; location-bearing
// times with DST transitions would throw the ceiling off by one.
const hoursPerDay = 24

// Convention selects which weekday starts a week.
type Convention int

const (
	// SundayFirst numbers Sunday as column 0 (weekly view).
	SundayFirst Convention = iota
	// MondayFirst numbers Monday as column 0 (monthly view).
	MondayFirst
)

// String returns a human-readable name for the convention.
func (c Convention) String() string {
	if c == MondayFirst {
		return "monday-first"
	}
	return "sunday-first"
}

// DayIndex returns the whole-day offset of date from start, rounded up.
// A date earlier than start yields a negative index.
func DayIndex(date, start time.Time) int {
	return int(math.Ceil(date.Sub(start).Hours() / hoursPerDay))
}

// MonthStart returns the day index where pregnancy month m begins, for
// m in [0, PregnancyMonths]. The partition tiles [0, totalDays) exactly:
// MonthStart(0) == 0, MonthStart(PregnancyMonths) == totalDays, and
// boundaries are monotonically non-decreasing.
func MonthStart(m, totalDays int) int {
	return int(math.Round(float64(m) * float64(totalDays) / PregnancyMonths))
}

// MonthSpan returns the [start, end) day index range of pregnancy month m
// (zero-based, so m in [0, PregnancyMonths)).
func MonthSpan(m, totalDays int) (start, end int) {
	return MonthStart(m, totalDays), MonthStart(m+1, totalDays)
}

// MonthBoundary marks where a real calendar month begins within the
// tracked range, for month header labels.
type MonthBoundary struct {
	Index int    // day index of the month's first tracked day
	Name  string // English month name, e.g. "March"
	Year  int
}

// CalendarMonths returns the ordered calendar-month boundaries covering
// [0, totalDays). The first boundary is always at index 0 (the month the
// range starts in); subsequent boundaries fall on the first of each
// following month that lies inside the range.
func CalendarMonths(start time.Time, totalDays int) []MonthBoundary {
	if totalDays <= 0 {
		return nil
	}

	boundaries := []MonthBoundary{{
		Index: 0,
		Name:  start.Month().String(),
		Year:  start.Year(),
	}}

	// Walk first-of-month dates until we leave the range.
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for {
		first = first.AddDate(0, 1, 0)
		idx := DayIndex(first, start)
		if idx >= totalDays {
			break
		}
		if idx <= 0 {
			continue
		}
		boundaries = append(boundaries, MonthBoundary{
			Index: idx,
			Name:  first.Month().String(),
			Year:  first.Year(),
		})
	}
	return boundaries
}

// Weekday returns the zero-based column of date under the given
// convention: 0..6 with Sunday=0 for SundayFirst, Monday=0 for MondayFirst.
func Weekday(date time.Time, conv Convention) int {
	wd := int(date.Weekday()) // Sunday == 0
	if conv == MondayFirst {
		return (wd + 6) % 7
	}
	return wd
}

// WeekCount returns the number of week rows needed to lay out totalDays
// days starting at start in a 7-column calendar grid under conv. The
// first row is padded by the start date's weekday offset.
func WeekCount(start time.Time, totalDays int, conv Convention) int {
	if totalDays <= 0 {
		return 0
	}
	lead := Weekday(start, conv)
	return (lead + totalDays + 6) / 7
}

// GridPosition returns the (row, column) of the day at index idx in a
// 7-column calendar grid starting at start under conv.
func GridPosition(start time.Time, idx int, conv Convention) (row, col int) {
	pos := Weekday(start, conv) + idx
	return pos / 7, pos % 7
}
