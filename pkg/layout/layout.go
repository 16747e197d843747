package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// View modes for the discriminated Layout union.
const (
	ViewGrid     = "grid"
	ViewWeekly   = "weekly"
	ViewMonthly  = "monthly"
	ViewTimeline = "timeline"
)

// Layout is the serializable output of one layout pass, consumed by a
// rendering layer that paints cells and labels at the computed
// coordinates. It is a discriminated union - check ViewMode:
//
//	Grid ("grid"):
//	  - Cells, CellSize, LabelFontSize; Sections in portrait
//
//	Weekly/Monthly ("weekly"/"monthly"):
//	  - Cells with calendar (row, col) positions, CellSize
//	  - Headers: month/week labels laned along the vertical axis
//
//	Timeline ("timeline"):
//	  - Milestones: point-milestone labels with lanes and collapse state
//	  - Bars + BarLabels: range milestones
//	  - Fit: whether the collapse algorithm met its height budgets
//
// Every recomputation (viewport resize, data change) produces a fresh
// Layout; nothing here is mutated after construction.
type Layout struct {
	// Discriminator
	ViewMode string `json:"view_mode"`

	// Frame dimensions
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Grid metrics
	CellSize      float64 `json:"cell_size,omitempty"`
	LabelFontSize float64 `json:"label_font_size,omitempty"`

	// Day cells (all views)
	Cells []Cell `json:"cells,omitempty"`

	// Section partitions (portrait grid, monthly view)
	Sections []Section `json:"sections,omitempty"`

	// Laned labels along an axis (month names, week numbers)
	Headers []PlacedLabel `json:"headers,omitempty"`

	// Timeline content
	Milestones []PlacedLabel `json:"milestones,omitempty"`
	Bars       []PlacedBar   `json:"bars,omitempty"`
	BarLabels  []PlacedLabel `json:"bar_labels,omitempty"`

	// Fit reports the collapse outcome for timeline layouts. False means
	// the stack still overflows after collapsing everything; the layout
	// remains renderable.
	Fit bool `json:"fit"`
}

// Cell is one positioned day cell.
type Cell struct {
	Index       int    `json:"index"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Section     int    `json:"section,omitempty"`
	Passed      bool   `json:"passed,omitempty"`
	Today       bool   `json:"today,omitempty"`
	Annotation  string `json:"annotation,omitempty"`
	Color       string `json:"color,omitempty"`
	OddWeek     bool   `json:"odd_week,omitempty"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// PlacedLabel is a label with its final geometry: horizontal center,
// box width, assigned lane and the lane's pixel offset.
type PlacedLabel struct {
	ID        string  `json:"id"`
	Text      string  `json:"text,omitempty"`
	Emoji     string  `json:"emoji,omitempty"`
	Color     string  `json:"color,omitempty"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Lane      int     `json:"lane"`
	Top       float64 `json:"top"`
	Collapsed bool    `json:"collapsed,omitempty"`
}

// PlacedBar is a range milestone's bar with its final geometry.
type PlacedBar struct {
	ID    string  `json:"id"`
	Color string  `json:"color,omitempty"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Lane  int     `json:"lane"`
	Top   float64 `json:"top"`
}

// Section is one grid section (a pregnancy month in the portrait grid,
// a calendar month in the monthly view).
type Section struct {
	Name       string `json:"name,omitempty"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"` // exclusive
	Rows       int    `json:"rows"`
}

// Marshal serializes the layout to indented JSON.
func (l *Layout) Marshal() ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal parses a layout from JSON.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, nil
}

// WriteFile writes the layout as JSON to path.
func (l *Layout) WriteFile(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile loads a layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	return Unmarshal(data)
}
