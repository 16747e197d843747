// Package layout implements the geometric layout engine: grid cell
// sizing, interval lane assignment, collapse-under-height-budget, and
// gantt bar placement. Everything here is pure computation over value
// types; outputs are plain data handed to a rendering layer elsewhere.
package layout

import (
	"cmp"
	"slices"
)

// Item is a horizontally positioned, variably wide element to be stacked
// into lanes. Center is the fixed pixel center; Width the full measured
// box width. Colored marks semantically highlighted items, which the
// collapse algorithm keeps legible longest.
type Item struct {
	ID        string
	Center    float64
	Width     float64
	Colored   bool
	Collapsed bool
}

// Left returns the left edge of the item's box.
func (it Item) Left() float64 { return it.Center - it.Width/2 }

// Right returns the right edge of the item's box.
func (it Item) Right() float64 { return it.Center + it.Width/2 }

// Overlaps reports whether two items conflict horizontally, including
// the minimum gap that must separate boxes sharing a lane.
func Overlaps(a, b Item, gap float64) bool {
	return a.Right()+gap > b.Left() && b.Right()+gap > a.Left()
}

// SearchOrder selects how free lanes are scanned for each item. Both
// strategies share the same interval-coloring routine.
type SearchOrder int

const (
	// SearchNearestZero scans lanes outward from the baseline in the
	// order 0, 1, -1, 2, -2, ... allowing negative lanes so items stack
	// on both sides of the baseline while staying close to it. Used by
	// the calendar week/month numbering.
	SearchNearestZero SearchOrder = iota

	// SearchFirstFit scans non-negative lanes upward from 0, filling any
	// gap in the occupied bands before opening a new lane. Used by the
	// landscape timeline, which needs a tight bottom-anchored stack.
	SearchFirstFit
)

// Assignment is the result of a lane pass: one lane per item ID plus the
// occupied lane extent.
type Assignment struct {
	Lanes   map[string]int
	MinLane int
	MaxLane int
}

// LaneCount returns the number of lanes spanned, including empty bands
// between MinLane and MaxLane.
func (a Assignment) LaneCount() int {
	if len(a.Lanes) == 0 {
		return 0
	}
	return a.MaxLane - a.MinLane + 1
}

// StackHeight returns the total pixel height of the lane stack.
func (a Assignment) StackHeight(rowHeight float64) float64 {
	return float64(a.LaneCount()) * rowHeight
}

// AssignLanes places every item into a lane such that no two items in
// one lane overlap horizontally (per Overlaps with gap), greedily
// minimizing the occupied lane extent. Items are processed sorted by
// Center; ties break by ID for determinism. Item IDs must be unique.
func AssignLanes(items []Item, gap float64, order SearchOrder) Assignment {
	asn := Assignment{Lanes: make(map[string]int, len(items))}
	if len(items) == 0 {
		asn.MaxLane = -1
		return asn
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		if c := cmp.Compare(a.Center, b.Center); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	placed := make(map[int][]Item)
	first := true
	for _, it := range sorted {
		lane := findLane(placed, it, gap, order)
		placed[lane] = append(placed[lane], it)
		asn.Lanes[it.ID] = lane
		if first || lane < asn.MinLane {
			asn.MinLane = lane
		}
		if first || lane > asn.MaxLane {
			asn.MaxLane = lane
		}
		first = false
	}
	return asn
}

// findLane returns the first conflict-free lane for it under the given
// search order.
func findLane(placed map[int][]Item, it Item, gap float64, order SearchOrder) int {
	// One lane per item is always enough; the +1 covers the outward scan.
	limit := len(placed) + 1

	if order == SearchFirstFit {
		for lane := 0; lane <= limit; lane++ {
			if laneFree(placed[lane], it, gap) {
				return lane
			}
		}
		return limit
	}

	// Nearest-zero: 0, 1, -1, 2, -2, ...
	if laneFree(placed[0], it, gap) {
		return 0
	}
	for k := 1; k <= limit; k++ {
		if laneFree(placed[k], it, gap) {
			return k
		}
		if laneFree(placed[-k], it, gap) {
			return -k
		}
	}
	return limit
}

// laneFree reports whether it conflicts with none of the items already
// placed in a lane.
func laneFree(occupants []Item, it Item, gap float64) bool {
	for _, o := range occupants {
		if Overlaps(o, it, gap) {
			return false
		}
	}
	return true
}
