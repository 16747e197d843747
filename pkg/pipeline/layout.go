package pipeline

import (
	"fmt"
	"math"

	"github.com/mfbx9da4/meanwhile/pkg/calendar"
	"github.com/mfbx9da4/meanwhile/pkg/highlight"
	"github.com/mfbx9da4/meanwhile/pkg/layout"
	"github.com/mfbx9da4/meanwhile/pkg/viewport"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout builds the per-view geometry for derived data.
// This is the unified entry point for generating serializable layout data.
func GenerateLayout(d *Derived, opts Options) (layout.Layout, error) {
	switch opts.View {
	case layout.ViewGrid:
		return buildGrid(d, opts), nil
	case layout.ViewWeekly:
		return buildWeekly(d, opts), nil
	case layout.ViewMonthly:
		return buildMonthly(d, opts), nil
	case layout.ViewTimeline:
		return buildTimeline(d, opts), nil
	default:
		return layout.Layout{}, fmt.Errorf("invalid view: %q", opts.View)
	}
}

// cellsFromDays converts the day set to cells with highlight and today
// emoji overlays. Positions are filled in by the caller.
func cellsFromDays(days []calendar.Day, todayEmoji string, hl highlight.Selection) []layout.Cell {
	cells := make([]layout.Cell, len(days))
	for i, d := range days {
		cells[i] = layout.Cell{
			Index:       d.Index,
			Passed:      d.Passed,
			Today:       d.Today,
			Annotation:  d.Annotation,
			Color:       d.Color,
			OddWeek:     d.OddWeek,
			Highlighted: hl.Contains(d.Index),
		}
		if d.Today && cells[i].Annotation == "" {
			cells[i].Annotation = todayEmoji
		}
	}
	return cells
}

// =============================================================================
// Grid View
// =============================================================================

// buildGrid fills the viewport with day cells. Landscape uses a single
// aspect-matched grid; portrait splits into one section per pregnancy
// month, stacked with headers.
func buildGrid(d *Derived, opts Options) layout.Layout {
	vp := opts.Viewport
	l := layout.Layout{
		ViewMode: layout.ViewGrid,
		Width:    vp.Width,
		Height:   vp.Height,
		Cells:    cellsFromDays(d.Days, opts.Document.TodayEmoji, opts.Highlight),
		Fit:      true,
	}

	if vp.Orientation() == viewport.Landscape {
		// Column count matched to the viewport aspect so cells come out
		// roughly square before flooring.
		cols := int(math.Ceil(math.Sqrt(float64(d.TotalDays) * vp.Width / vp.Height)))
		cols = max(cols, 1)
		rows := (d.TotalDays + cols - 1) / cols

		l.CellSize = layout.SizeGrid(vp.Width, vp.Height, cols, rows, opts.Gap)
		l.LabelFontSize = layout.LabelFontSize(l.CellSize)
		for i := range l.Cells {
			l.Cells[i].Row = i / cols
			l.Cells[i].Col = i % cols
		}
		return l
	}

	// Portrait: one section per pregnancy month.
	cols := GridSectionCols
	specs := make([]layout.SectionSpec, calendar.PregnancyMonths)
	for m := 0; m < calendar.PregnancyMonths; m++ {
		start, end := calendar.MonthSpan(m, d.TotalDays)
		span := end - start
		rows := (span + cols - 1) / cols
		specs[m] = layout.SectionSpec{Rows: rows}
		l.Sections = append(l.Sections, layout.Section{
			Name:       fmt.Sprintf("Month %d", m+1),
			StartIndex: start,
			EndIndex:   end,
			Rows:       rows,
		})
	}

	l.CellSize = layout.SizeSectionedGrid(vp.Width, vp.Height, cols, specs,
		opts.Gap, SectionGap, SectionHeaderHeight)
	l.LabelFontSize = layout.LabelFontSize(l.CellSize)

	for m := 0; m < calendar.PregnancyMonths; m++ {
		start, end := calendar.MonthSpan(m, d.TotalDays)
		for idx := start; idx < end; idx++ {
			local := idx - start
			l.Cells[idx].Section = m
			l.Cells[idx].Row = local / cols
			l.Cells[idx].Col = local % cols
		}
	}
	return l
}

// =============================================================================
// Weekly View
// =============================================================================

// buildWeekly lays the days out as a Sunday-first week calendar with
// month name labels laned along the vertical axis.
func buildWeekly(d *Derived, opts Options) layout.Layout {
	vp := opts.Viewport
	const cols = 7
	rows := calendar.WeekCount(d.Start, d.TotalDays, calendar.SundayFirst)

	l := layout.Layout{
		ViewMode: layout.ViewWeekly,
		Width:    vp.Width,
		Height:   vp.Height,
		Cells:    cellsFromDays(d.Days, opts.Document.TodayEmoji, opts.Highlight),
		Fit:      true,
	}
	l.CellSize = layout.SizeGrid(vp.Width, vp.Height, cols, rows, opts.Gap)
	l.LabelFontSize = layout.LabelFontSize(l.CellSize)

	for i := range l.Cells {
		row, col := calendar.GridPosition(d.Start, i, calendar.SundayFirst)
		l.Cells[i].Row = row
		l.Cells[i].Col = col
	}

	// Month labels run rotated along the left edge, so their extent on
	// the vertical axis is the measured text width. Lanes push colliding
	// labels outward from the margin.
	rowPitch := l.CellSize + opts.Gap
	months := calendar.CalendarMonths(d.Start, d.TotalDays)
	items := make([]layout.Item, len(months))
	for i, m := range months {
		row, _ := calendar.GridPosition(d.Start, m.Index, calendar.SundayFirst)
		// Keyed by boundary index, not name: a range longer than a year
		// repeats month names.
		items[i] = layout.Item{
			ID:     fmt.Sprintf("m%d", m.Index),
			Center: float64(row)*rowPitch + l.CellSize/2,
			Width:  opts.Measurer.Measure(m.Name, DefaultLabelSize),
		}
	}
	asn := layout.AssignLanes(items, opts.Gap, layout.SearchNearestZero)
	for i, m := range months {
		lane := asn.Lanes[items[i].ID]
		l.Headers = append(l.Headers, layout.PlacedLabel{
			ID:    items[i].ID,
			Text:  m.Name,
			Left:  items[i].Center,
			Width: items[i].Width,
			Lane:  lane,
			Top:   float64(lane) * (DefaultLabelSize + 4),
		})
	}
	return l
}

// =============================================================================
// Monthly View
// =============================================================================

// buildMonthly lays the days out one section per calendar month,
// Monday-first, with pregnancy week numbers laned along the side.
func buildMonthly(d *Derived, opts Options) layout.Layout {
	vp := opts.Viewport
	const cols = 7

	l := layout.Layout{
		ViewMode: layout.ViewMonthly,
		Width:    vp.Width,
		Height:   vp.Height,
		Cells:    cellsFromDays(d.Days, opts.Document.TodayEmoji, opts.Highlight),
		Fit:      true,
	}

	months := calendar.CalendarMonths(d.Start, d.TotalDays)
	specs := make([]layout.SectionSpec, len(months))
	type monthGeom struct{ start, end, firstCol, rows int }
	geoms := make([]monthGeom, len(months))

	for i, m := range months {
		end := d.TotalDays
		if i+1 < len(months) {
			end = months[i+1].Index
		}
		firstCol := calendar.Weekday(d.Days[m.Index].Date, calendar.MondayFirst)
		span := end - m.Index
		rows := (span + firstCol + cols - 1) / cols
		geoms[i] = monthGeom{start: m.Index, end: end, firstCol: firstCol, rows: rows}
		specs[i] = layout.SectionSpec{Rows: rows}
		l.Sections = append(l.Sections, layout.Section{
			Name:       m.Name,
			StartIndex: m.Index,
			EndIndex:   end,
			Rows:       rows,
		})
	}

	l.CellSize = layout.SizeSectionedGrid(vp.Width, vp.Height, cols, specs,
		opts.Gap, SectionGap, SectionHeaderHeight)
	l.LabelFontSize = layout.LabelFontSize(l.CellSize)

	for s, g := range geoms {
		for idx := g.start; idx < g.end; idx++ {
			local := idx - g.start + g.firstCol
			l.Cells[idx].Section = s
			l.Cells[idx].Row = local / cols
			l.Cells[idx].Col = local % cols
		}
	}

	// Pregnancy week numbers down the side, one per week, positioned at
	// the global vertical center of the week's first tracked day.
	rowPitch := l.CellSize + opts.Gap
	sectionTop := make([]float64, len(geoms))
	y := 0.0
	for s, g := range geoms {
		sectionTop[s] = y + SectionHeaderHeight
		y += SectionHeaderHeight + float64(g.rows)*rowPitch + SectionGap
	}

	var items []layout.Item
	for idx := 0; idx < d.TotalDays; idx += 7 {
		week := idx/7 + 1
		s := l.Cells[idx].Section
		center := sectionTop[s] + float64(l.Cells[idx].Row)*rowPitch + l.CellSize/2
		items = append(items, layout.Item{
			ID:     fmt.Sprintf("W%d", week),
			Center: center,
			Width:  DefaultLabelSize + 4,
		})
	}
	asn := layout.AssignLanes(items, opts.Gap, layout.SearchNearestZero)
	for _, it := range items {
		lane := asn.Lanes[it.ID]
		l.Headers = append(l.Headers, layout.PlacedLabel{
			ID:    it.ID,
			Text:  it.ID,
			Left:  it.Center,
			Width: it.Width,
			Lane:  lane,
			Top:   float64(lane) * (DefaultLabelSize + 4),
		})
	}
	return l
}

// =============================================================================
// Timeline View
// =============================================================================

// buildTimeline places point milestones and gantt bars along the major
// axis. In landscape the point and gantt label stacks each get their own
// height budget and collapse to fit; portrait stacks are unbudgeted.
func buildTimeline(d *Derived, opts Options) layout.Layout {
	vp := opts.Viewport
	landscape := vp.Orientation() == viewport.Landscape
	axis := vp.Height
	if landscape {
		axis = vp.Width
	}
	total := float64(d.TotalDays)

	// Day centers sit mid-cell along the axis.
	centerFor := func(idx int) float64 { return (float64(idx) + 0.5) / total * axis }
	edgeFor := func(idx int) float64 { return float64(idx) / total * axis }

	l := layout.Layout{
		ViewMode: layout.ViewTimeline,
		Width:    vp.Width,
		Height:   vp.Height,
		Cells:    cellsFromDays(d.Days, opts.Document.TodayEmoji, opts.Highlight),
		Fit:      true,
	}
	for i := range l.Cells {
		l.Cells[i].Row = 0
		l.Cells[i].Col = i
	}

	// Point milestones.
	items := make([]layout.Item, len(d.Points))
	for i, p := range d.Points {
		w := opts.Measurer.Measure(p.Label, DefaultLabelSize) + DefaultLabelPadding
		items[i] = layout.Item{
			ID:      fmt.Sprintf("p%d", i),
			Center:  centerFor(p.Index),
			Width:   math.Min(w, opts.MaxLabelWidth),
			Colored: p.Color != "",
		}
	}

	var pointAsn layout.Assignment
	pointItems := items
	if landscape {
		fit := layout.FitWithinHeight(items, opts.Gap, layout.Budget{
			MaxHeight: vp.Height * opts.PointBudget,
			RowHeight: opts.RowHeight,
		})
		pointItems, pointAsn = fit.Items, fit.Assignment
		l.Fit = l.Fit && fit.OK
	} else {
		pointAsn = layout.AssignLanes(items, opts.Gap, layout.SearchFirstFit)
	}
	for i, p := range d.Points {
		it := pointItems[i]
		lane := pointAsn.Lanes[it.ID]
		l.Milestones = append(l.Milestones, layout.PlacedLabel{
			ID:        it.ID,
			Text:      p.Label,
			Emoji:     p.Emoji,
			Color:     p.Color,
			Left:      it.Center,
			Width:     it.Width,
			Lane:      lane,
			Top:       float64(lane) * opts.RowHeight,
			Collapsed: it.Collapsed,
		})
	}

	// Range milestones: bars plus independently laned labels.
	spans := make([]layout.Span, len(d.Ranges))
	for i, r := range d.Ranges {
		spans[i] = layout.Span{
			ID:      fmt.Sprintf("r%d", i),
			Label:   r.Label,
			Start:   edgeFor(r.Start),
			End:     edgeFor(r.End + 1),
			Colored: r.Color != "",
		}
	}

	barAsn := layout.LayoutBars(spans, opts.Gap)
	for i, r := range d.Ranges {
		lane := barAsn.Lanes[spans[i].ID]
		l.Bars = append(l.Bars, layout.PlacedBar{
			ID:    spans[i].ID,
			Color: r.Color,
			Start: spans[i].Start,
			End:   spans[i].End,
			Lane:  lane,
			Top:   float64(lane) * BarRowHeight,
		})
	}

	measure := func(s string) float64 { return opts.Measurer.Measure(s, DefaultLabelSize) }
	labelItems := layout.LabelItems(spans, measure, DefaultLabelPadding, opts.MaxLabelWidth)

	var labelAsn layout.Assignment
	if landscape {
		fit := layout.FitWithinHeight(labelItems, opts.Gap, layout.Budget{
			MaxHeight: vp.Height * opts.GanttBudget,
			RowHeight: opts.RowHeight,
		})
		labelItems, labelAsn = fit.Items, fit.Assignment
		l.Fit = l.Fit && fit.OK
	} else {
		labelAsn = layout.AssignLanes(labelItems, opts.Gap, layout.SearchFirstFit)
	}
	for i, r := range d.Ranges {
		it := labelItems[i]
		lane := labelAsn.Lanes[it.ID]
		l.BarLabels = append(l.BarLabels, layout.PlacedLabel{
			ID:        it.ID,
			Text:      r.Label,
			Emoji:     r.Emoji,
			Color:     r.Color,
			Left:      it.Center,
			Width:     it.Width,
			Lane:      lane,
			Top:       float64(lane) * opts.RowHeight,
			Collapsed: it.Collapsed,
		})
	}

	return l
}
