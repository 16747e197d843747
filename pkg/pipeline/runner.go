package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfbx9da4/meanwhile/pkg/cache"
	"github.com/mfbx9da4/meanwhile/pkg/layout"
	"github.com/mfbx9da4/meanwhile/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete derive → measure → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Derive
	deriveStart := time.Now()
	totalDays, _ := opts.Document.TotalDays()
	observability.Pipeline().OnDeriveStart(ctx, totalDays, len(opts.Document.Milestones))
	d, err := Derive(opts.Document, opts.Today)
	result.Stats.DeriveTime = time.Since(deriveStart)
	observability.Pipeline().OnDeriveComplete(ctx, totalDays, result.Stats.DeriveTime, err)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	result.Stats.TotalDays = d.TotalDays
	result.Stats.MilestoneCount = len(d.Points) + len(d.Ranges)
	if hash, err := opts.DocHash(); err == nil {
		result.DocHash = hash
	}

	r.Logger.Info("derived day set",
		"days", d.TotalDays,
		"milestones", result.Stats.MilestoneCount,
		"duration", result.Stats.DeriveTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"view", opts.View,
		"cells", len(l.Cells),
		"fit", l.Fit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Derive is a convenience wrapper that validates options before deriving.
func (r *Runner) Derive(ctx context.Context, opts Options) (*Derived, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return Derive(opts.Document, opts.Today)
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, d *Derived, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	docHash, err := opts.DocHash()
	if err != nil {
		return layout.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			cached, err := layout.Unmarshal(data)
			if err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else {
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	// Generate layout
	itemCount := len(d.Points) + len(d.Ranges)
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.View, itemCount)
	l, err := GenerateLayout(d, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.View, time.Since(layoutStart), err)
	if err != nil {
		return layout.Layout{}, false, err
	}
	observability.Pipeline().OnCollapse(ctx, opts.View, collapsedCount(l), lanesUsed(l))

	// Cache the result
	if data, err := l.Marshal(); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, d *Derived, opts Options) (layout.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, d, opts)
	return l, err
}

// collapsedCount counts milestone and bar labels shown in collapsed form.
func collapsedCount(l layout.Layout) int {
	n := 0
	for _, m := range l.Milestones {
		if m.Collapsed {
			n++
		}
	}
	for _, b := range l.BarLabels {
		if b.Collapsed {
			n++
		}
	}
	return n
}

// lanesUsed counts distinct lanes occupied by milestone labels.
func lanesUsed(l layout.Layout) int {
	seen := make(map[int]struct{})
	for _, m := range l.Milestones {
		seen[m.Lane] = struct{}{}
	}
	return len(seen)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
