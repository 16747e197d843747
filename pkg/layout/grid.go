package layout

import "math"

const (
	// MinCellSize is the hard floor for grid cell sizing, keeping
	// geometry sane when the viewport is degenerate.
	MinCellSize = 8.0

	labelSizeRatio = 0.4
	labelSizeMin   = 8.0
	labelSizeMax   = 11.0
)

// SizeGrid computes the largest uniform square cell size, floored to a
// whole pixel, that lets a cols x rows grid with the given gap fit the
// available rectangle. Never returns less than MinCellSize, so zero or
// negative available space cannot produce degenerate geometry.
func SizeGrid(availWidth, availHeight float64, cols, rows int, gap float64) float64 {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	byWidth := (availWidth - gap*float64(cols-1)) / float64(cols)
	byHeight := (availHeight - gap*float64(rows-1)) / float64(rows)
	cell := math.Floor(math.Min(byWidth, byHeight))
	return math.Max(cell, MinCellSize)
}

// LabelFontSize derives the in-cell label font size as a clamped
// fraction of the cell size.
func LabelFontSize(cell float64) float64 {
	return math.Min(math.Max(cell*labelSizeRatio, labelSizeMin), labelSizeMax)
}

// SectionSpec describes one grid section in a multi-section layout (one
// section per month in the portrait view).
type SectionSpec struct {
	Rows int
}

// SizeSectionedGrid computes the cell size for a stack of grid sections
// sharing a column count, such as the portrait per-month layout. Header
// height is charged once per section and the inter-section gap once per
// boundary, never per cell; cells keep the in-grid gap.
func SizeSectionedGrid(availWidth, availHeight float64, cols int, sections []SectionSpec, gap, sectionGap, headerHeight float64) float64 {
	if len(sections) == 0 {
		return MinCellSize
	}

	totalRows := 0
	for _, s := range sections {
		totalRows += s.Rows
	}
	if totalRows < 1 {
		return MinCellSize
	}

	cellHeight := availHeight
	cellHeight -= headerHeight * float64(len(sections))
	cellHeight -= sectionGap * float64(len(sections)-1)
	cellHeight -= gap * float64(totalRows-len(sections)) // in-grid gaps only

	if cols < 1 {
		cols = 1
	}
	byWidth := (availWidth - gap*float64(cols-1)) / float64(cols)
	byHeight := cellHeight / float64(totalRows)
	cell := math.Floor(math.Min(byWidth, byHeight))
	return math.Max(cell, MinCellSize)
}
