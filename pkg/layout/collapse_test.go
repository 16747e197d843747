package layout

import "testing"

func TestFitWithinHeightAlreadyFits(t *testing.T) {
	items := []Item{
		{ID: "a", Center: 100, Width: 40},
		{ID: "b", Center: 300, Width: 40},
	}
	res := FitWithinHeight(items, 8, Budget{MaxHeight: 100, RowHeight: 42})
	if !res.OK {
		t.Fatal("expected fit")
	}
	for _, it := range res.Items {
		if it.Collapsed {
			t.Errorf("item %s collapsed without need", it.ID)
		}
	}
}

func TestFitWithinHeightSingleItem(t *testing.T) {
	res := FitWithinHeight([]Item{{ID: "m", Center: 50, Width: 120}}, 8, Budget{MaxHeight: 100, RowHeight: 42})
	if !res.OK {
		t.Fatal("expected fit")
	}
	if res.Assignment.Lanes["m"] != 0 || res.Items[0].Collapsed {
		t.Errorf("single item: lane %d collapsed %v, want lane 0 expanded",
			res.Assignment.Lanes["m"], res.Items[0].Collapsed)
	}
}

func TestFitWithinHeightCollapsesToBudget(t *testing.T) {
	// Five mutually overlapping items, room for two full lanes
	// (2*42 = 84 <= 100 < 3*42).
	items := []Item{
		{ID: "a", Center: 100, Width: 200},
		{ID: "b", Center: 150, Width: 200},
		{ID: "c", Center: 200, Width: 200, Colored: true},
		{ID: "d", Center: 250, Width: 200},
		{ID: "e", Center: 300, Width: 200, Colored: true},
	}
	res := FitWithinHeight(items, 8, Budget{MaxHeight: 100, RowHeight: 42})

	if !res.OK {
		t.Fatalf("expected fit, got overflow: %+v", res.Assignment)
	}
	if h := float64(res.Assignment.MaxLane+1) * 42; h > 100 {
		t.Errorf("stack height %v exceeds budget", h)
	}

	// Colored items must survive longer than uncolored ones: no colored
	// item may be collapsed while an uncolored overlapping one is not.
	collapsed := make(map[string]bool)
	for _, it := range res.Items {
		collapsed[it.ID] = it.Collapsed
	}
	if collapsed["c"] || collapsed["e"] {
		for _, id := range []string{"a", "b", "d"} {
			if !collapsed[id] {
				t.Errorf("colored item collapsed while uncolored %s expanded", id)
			}
		}
	}
}

func TestFitWithinHeightExhaustsBudget(t *testing.T) {
	// Budget admits zero lanes; even fully collapsed items need one.
	items := []Item{
		{ID: "a", Center: 100, Width: 80},
		{ID: "b", Center: 105, Width: 80},
	}
	res := FitWithinHeight(items, 8, Budget{MaxHeight: 10, RowHeight: 42})

	if res.OK {
		t.Fatal("expected ok=false on exhausted budget")
	}
	// Degraded but still renderable: every item keeps a lane.
	for _, it := range res.Items {
		if _, ok := res.Assignment.Lanes[it.ID]; !ok {
			t.Errorf("item %s missing from final assignment", it.ID)
		}
		if !it.Collapsed {
			t.Errorf("item %s not collapsed in terminal degraded state", it.ID)
		}
	}
}

func TestFitWithinHeightMonotonicCollapse(t *testing.T) {
	items := []Item{
		{ID: "a", Center: 100, Width: 300},
		{ID: "b", Center: 120, Width: 300},
		{ID: "c", Center: 140, Width: 300},
		{ID: "d", Center: 160, Width: 300},
	}
	res := FitWithinHeight(items, 8, Budget{MaxHeight: 84, RowHeight: 42})

	// Collapsed items stay at the icon footprint; expanded keep width.
	for i, it := range res.Items {
		if it.Collapsed && it.Width != CollapsedWidth {
			t.Errorf("collapsed item %s width = %v, want %v", it.ID, it.Width, CollapsedWidth)
		}
		if !it.Collapsed && it.Width != items[i].Width {
			t.Errorf("expanded item %s width changed: %v", it.ID, it.Width)
		}
	}
}

func TestFitWithinHeightDoesNotMutateInput(t *testing.T) {
	items := []Item{
		{ID: "a", Center: 100, Width: 300},
		{ID: "b", Center: 120, Width: 300},
		{ID: "c", Center: 140, Width: 300},
	}
	FitWithinHeight(items, 8, Budget{MaxHeight: 42, RowHeight: 42})
	for _, it := range items {
		if it.Collapsed || it.Width != 300 {
			t.Errorf("input mutated: %+v", it)
		}
	}
}

func TestFitWithinHeightPrefersLeftmost(t *testing.T) {
	// Two uncolored items overlapping the top stack: the leftmost
	// collapses first.
	items := []Item{
		{ID: "left", Center: 90, Width: 200},
		{ID: "right", Center: 120, Width: 200},
		{ID: "top", Center: 105, Width: 200},
	}
	res := FitWithinHeight(items, 8, Budget{MaxHeight: 84, RowHeight: 42})

	byID := make(map[string]Item)
	for _, it := range res.Items {
		byID[it.ID] = it
	}
	if !byID["left"].Collapsed {
		t.Errorf("expected leftmost item collapsed first: %+v", res.Items)
	}
}
