// Package pipeline provides the core layout pipeline.
//
// This package implements the complete derive → measure → layout pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Derive: Turn the config document and the current date into the day
//     set and milestone day indices
//  2. Layout: Compute per-view geometry (cells, lanes, collapse state)
//     for the requested viewport
//
// Text measurement sits between the stages as a pure, memoized query.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Document: doc,
//	    Viewport: viewport.Viewport{Width: 800, Height: 600},
//	    View:     layout.ViewTimeline,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := result.Layout.Marshal()
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfbx9da4/meanwhile/pkg/cache"
	"github.com/mfbx9da4/meanwhile/pkg/config"
	"github.com/mfbx9da4/meanwhile/pkg/highlight"
	"github.com/mfbx9da4/meanwhile/pkg/layout"
	"github.com/mfbx9da4/meanwhile/pkg/textmetrics"
	"github.com/mfbx9da4/meanwhile/pkg/viewport"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultRowHeight is the pixel height of one label lane.
	DefaultRowHeight = 42.0

	// DefaultGap is the minimum horizontal gap between boxes sharing a lane
	// and between grid cells.
	DefaultGap = 8.0

	// DefaultLabelPadding is added to a label's measured text width.
	DefaultLabelPadding = 12.0

	// DefaultMaxLabelWidth caps a label box regardless of text length.
	DefaultMaxLabelWidth = 160.0

	// DefaultLabelSize is the font size labels are measured at.
	DefaultLabelSize = 13.0

	// DefaultPointBudget is the fraction of viewport height available to
	// the point-milestone lane stack in the landscape timeline.
	DefaultPointBudget = 0.35

	// DefaultGanttBudget is the fraction of viewport height available to
	// the gantt label stack. Budgeted separately from the point stack.
	DefaultGanttBudget = 0.25

	// BarRowHeight is the pixel height of one gantt bar lane.
	BarRowHeight = 16.0

	// SectionHeaderHeight is the pixel height of a section header in
	// sectioned grids.
	SectionHeaderHeight = 24.0

	// SectionGap is the vertical gap between grid sections.
	SectionGap = 12.0

	// GridSectionCols is the column count for portrait grid sections.
	GridSectionCols = 16
)

// DefaultView is the view mode used when none is requested.
const DefaultView = layout.ViewGrid

// ValidViews is the set of supported view modes.
var ValidViews = map[string]bool{
	layout.ViewGrid:     true,
	layout.ViewWeekly:   true,
	layout.ViewMonthly:  true,
	layout.ViewTimeline: true,
}

// ValidateView checks that a view mode is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return fmt.Errorf("invalid view: %q (must be one of: grid, weekly, monthly, timeline)", view)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Derive options
	Document config.Document `json:"document"`
	Today    string          `json:"today,omitempty"` // YYYY-MM-DD; defaults to the current date

	// Layout options
	Viewport      viewport.Viewport   `json:"viewport"`
	View          string              `json:"view,omitempty"`
	RowHeight     float64             `json:"row_height,omitempty"`
	Gap           float64             `json:"gap,omitempty"`
	MaxLabelWidth float64             `json:"max_label_width,omitempty"`
	PointBudget   float64             `json:"point_budget,omitempty"`
	GanttBudget   float64             `json:"gantt_budget,omitempty"`
	Highlight     highlight.Selection `json:"highlight,omitempty"`
	Refresh       bool                `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger          `json:"-"`
	Measurer textmetrics.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed per-view geometry.
	Layout layout.Layout

	// DocHash is the content hash of the document.
	DocHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TotalDays      int
	MilestoneCount int
	DeriveTime     time.Duration
	LayoutTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := o.Document.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	if o.View == "" {
		o.View = DefaultView
	}
	if err := ValidateView(o.View); err != nil {
		return err
	}

	if o.Today == "" {
		o.Today = time.Now().Format(config.DateFormat)
	} else if _, err := time.Parse(config.DateFormat, o.Today); err != nil {
		return fmt.Errorf("invalid today: %q (must be YYYY-MM-DD)", o.Today)
	}

	o.Viewport = o.Viewport.Clamp()

	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Gap <= 0 {
		o.Gap = DefaultGap
	}
	if o.MaxLabelWidth <= 0 {
		o.MaxLabelWidth = DefaultMaxLabelWidth
	}
	if o.PointBudget <= 0 || o.PointBudget > 1 {
		o.PointBudget = DefaultPointBudget
	}
	if o.GanttBudget <= 0 || o.GanttBudget > 1 {
		o.GanttBudget = DefaultGanttBudget
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Measurer == nil {
		o.Measurer = textmetrics.Default()
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	hl := ""
	if !o.Highlight.Empty() {
		hl = fmt.Sprintf("%v:%s", o.Highlight.Days, o.Highlight.Color)
	}
	return cache.LayoutKeyOpts{
		View:          o.View,
		Width:         o.Viewport.Width,
		Height:        o.Viewport.Height,
		Today:         o.Today,
		RowHeight:     o.RowHeight,
		Gap:           o.Gap,
		MaxLabelWidth: o.MaxLabelWidth,
		PointBudget:   o.PointBudget,
		GanttBudget:   o.GanttBudget,
		Highlight:     hl,
	}
}

// DocHash returns the content hash of the document, used in cache keys.
func (o *Options) DocHash() (string, error) {
	data, err := o.Document.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(data), nil
}
