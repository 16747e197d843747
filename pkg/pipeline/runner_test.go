package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mfbx9da4/meanwhile/pkg/cache"
	"github.com/mfbx9da4/meanwhile/pkg/layout"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if r.Cache == nil {
		t.Error("Cache should default to a null cache")
	}
	if r.Keyer == nil {
		t.Error("Keyer should default to the default keyer")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, quietLogger())

	result, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(result.Layout.Cells) != 280 {
		t.Errorf("len(Cells) = %d, want 280", len(result.Layout.Cells))
	}
	if result.Stats.TotalDays != 280 {
		t.Errorf("Stats.TotalDays = %d, want 280", result.Stats.TotalDays)
	}
	if result.Stats.MilestoneCount != 2 {
		t.Errorf("Stats.MilestoneCount = %d, want 2", result.Stats.MilestoneCount)
	}
	if result.DocHash == "" {
		t.Error("DocHash should be set")
	}
	if result.CacheInfo.LayoutHit {
		t.Error("First run should not hit the cache")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("Empty options should fail")
	}
}

func TestRunnerLayoutCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("First execute failed: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("First run should miss")
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Second execute failed: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("Second run should hit the layout cache")
	}
	if second.Layout.ViewMode != first.Layout.ViewMode {
		t.Error("Cached layout should match")
	}

	// Refresh bypasses the cache.
	opts := testOptions()
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Refresh execute failed: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerCacheKeyCoversGeometryOptions(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	ctx := context.Background()

	wide := testOptions()
	wide.View = layout.ViewTimeline
	if _, err := r.Execute(ctx, wide); err != nil {
		t.Fatalf("Wide execute failed: %v", err)
	}

	narrow := testOptions()
	narrow.View = layout.ViewTimeline
	narrow.MaxLabelWidth = 40
	result, err := r.Execute(ctx, narrow)
	if err != nil {
		t.Fatalf("Narrow execute failed: %v", err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("Different MaxLabelWidth should not share a cache entry")
	}
	for _, m := range result.Layout.Milestones {
		if m.Width > 40 {
			t.Errorf("Milestone %s width = %v, want <= 40", m.ID, m.Width)
		}
	}
}
