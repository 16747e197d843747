package layout

import "math"

// BarPadding is the fixed horizontal padding added to a bar's extent for
// lane conflicts, so adjacent bars keep a visible seam.
const BarPadding = 2.0

// Span is a range milestone's horizontal extent in pixels, before lane
// assignment. Start and End are left/right edges; End >= Start.
type Span struct {
	ID      string
	Label   string
	Start   float64
	End     float64
	Colored bool
}

// Mid returns the horizontal midpoint of the span, where its label is
// centered.
func (s Span) Mid() float64 { return (s.Start + s.End) / 2 }

// barItem converts a span to a lane-engine item using the bar's own
// extent (no text width, just the fixed padding).
func barItem(s Span) Item {
	return Item{
		ID:      s.ID,
		Center:  s.Mid(),
		Width:   math.Abs(s.End-s.Start) + 2*BarPadding,
		Colored: s.Colored,
	}
}

// LayoutBars assigns each span's bar to a lane using bar extents
// directly. Bars use the first-fit order: stacks of overlapping ranges
// grow tightly upward from lane 0.
func LayoutBars(spans []Span, gap float64) Assignment {
	items := make([]Item, len(spans))
	for i, s := range spans {
		items[i] = barItem(s)
	}
	return AssignLanes(items, gap, SearchFirstFit)
}

// LabelItems builds the lane-engine items for the spans' labels: each
// centered on its bar's midpoint with the measured text width plus
// padding, capped at maxWidth. Bars and labels are laned independently
// because a label is often wider than its bar.
func LabelItems(spans []Span, measure func(string) float64, pad, maxWidth float64) []Item {
	items := make([]Item, len(spans))
	for i, s := range spans {
		w := measure(s.Label) + pad
		if maxWidth > 0 {
			w = math.Min(w, maxWidth)
		}
		items[i] = Item{
			ID:      s.ID,
			Center:  s.Mid(),
			Width:   w,
			Colored: s.Colored,
		}
	}
	return items
}

// LayoutLabels lanes the spans' labels with the given search order. In
// the landscape timeline, callers pass the items through FitWithinHeight
// instead, which applies the collapse budget on top of the same items.
func LayoutLabels(spans []Span, measure func(string) float64, pad, maxWidth, gap float64, order SearchOrder) Assignment {
	return AssignLanes(LabelItems(spans, measure, pad, maxWidth), gap, order)
}
