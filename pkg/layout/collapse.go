package layout

import (
	"cmp"
	"slices"
)

// CollapsedWidth is the icon-only footprint an item shrinks to when
// collapsed: room for a symbol marker, no text.
const CollapsedWidth = 14.0

// Budget bounds a lane stack for the collapse algorithm.
type Budget struct {
	MaxHeight float64 // pixel ceiling for the whole stack
	RowHeight float64 // fixed pixel height per lane
}

// FitResult is the terminal state of a collapse run.
type FitResult struct {
	// Items carries the input items with final widths and Collapsed flags.
	// Order matches the input.
	Items []Item

	// Assignment is the lane assignment of the final pass.
	Assignment Assignment

	// OK is true when the final stack fits within the budget. When false
	// the layout overflows but is still renderable: degraded, not failed.
	OK bool
}

// FitWithinHeight stacks items with SearchFirstFit and, while the stack
// exceeds the height budget, collapses one item at a time and retries.
// Collapse order: among items horizontally overlapping the topmost
// lane's occupants, uncolored items collapse before colored ones, and
// leftmost first within each group, so highlighted milestones stay
// legible longest. Collapsed items never re-expand within a run.
//
// The loop runs at most len(items)+2 passes. If the budget still cannot
// be met once every candidate is collapsed, the last computed layout is
// returned with OK=false.
func FitWithinHeight(items []Item, gap float64, b Budget) FitResult {
	cur := make([]Item, len(items))
	copy(cur, items)

	var asn Assignment
	for pass := 0; pass <= len(items)+1; pass++ {
		asn = AssignLanes(cur, gap, SearchFirstFit)
		if float64(asn.MaxLane+1)*b.RowHeight <= b.MaxHeight {
			return FitResult{Items: cur, Assignment: asn, OK: true}
		}

		idx := collapseCandidate(cur, asn, gap)
		if idx < 0 {
			break
		}
		cur[idx].Collapsed = true
		cur[idx].Width = CollapsedWidth
	}
	return FitResult{Items: cur, Assignment: asn, OK: false}
}

// collapseCandidate picks the next item to collapse: any expanded item
// whose span overlaps an occupant of the topmost lane, preferring
// uncolored over colored and leftmost within each group. Returns -1 when
// no expanded item contributes to the topmost stack.
func collapseCandidate(items []Item, asn Assignment, gap float64) int {
	var top []Item
	for _, it := range items {
		if asn.Lanes[it.ID] == asn.MaxLane {
			top = append(top, it)
		}
	}

	var candidates []int
	for i, it := range items {
		if it.Collapsed {
			continue
		}
		for _, t := range top {
			if it.ID == t.ID || Overlaps(it, t, gap) {
				candidates = append(candidates, i)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return -1
	}

	slices.SortFunc(candidates, func(a, b int) int {
		ia, ib := items[a], items[b]
		if ia.Colored != ib.Colored {
			if ia.Colored {
				return 1 // uncolored first
			}
			return -1
		}
		return cmp.Compare(ia.Center, ib.Center)
	})
	return candidates[0]
}
