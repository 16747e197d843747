package layout

import "testing"

func TestLayoutBars(t *testing.T) {
	spans := []Span{
		{ID: "tri1", Start: 0, End: 300},
		{ID: "tri2", Start: 310, End: 600},
		{ID: "leave", Start: 250, End: 450},
	}
	asn := LayoutBars(spans, 4)

	// tri1 and tri2 are disjoint (10px apart > padding+gap? padding 2
	// each side plus gap 4 closes 8 < 10) and share lane 0; leave
	// overlaps both and takes lane 1.
	if asn.Lanes["tri1"] != asn.Lanes["tri2"] {
		t.Errorf("disjoint bars on different lanes: %v", asn.Lanes)
	}
	if asn.Lanes["leave"] == asn.Lanes["tri1"] {
		t.Errorf("overlapping bars share lane: %v", asn.Lanes)
	}
	if asn.MinLane < 0 {
		t.Errorf("bar lanes must be non-negative, got %d", asn.MinLane)
	}
}

func TestLabelItemsCenteredAndCapped(t *testing.T) {
	spans := []Span{
		{ID: "a", Label: "First trimester", Start: 100, End: 300},
		{ID: "b", Label: "x", Start: 400, End: 500},
	}
	measure := func(s string) float64 { return float64(len(s)) * 10 }

	items := LabelItems(spans, measure, 16, 120)

	if items[0].Center != 200 || items[1].Center != 450 {
		t.Errorf("labels not centered on bar midpoints: %+v", items)
	}
	if items[0].Width != 120 {
		t.Errorf("wide label not capped: %v", items[0].Width)
	}
	if items[1].Width != 26 { // 10 + 16 padding
		t.Errorf("label width = %v, want 26", items[1].Width)
	}
}

func TestBarsAndLabelsLanedIndependently(t *testing.T) {
	// Two bars far apart share a bar lane, but their labels are wide
	// enough to conflict and need separate label lanes.
	spans := []Span{
		{ID: "a", Label: "aaaaaaaaaaaaaaaaaaaa", Start: 100, End: 140},
		{ID: "b", Label: "bbbbbbbbbbbbbbbbbbbb", Start: 160, End: 200},
	}
	measure := func(s string) float64 { return float64(len(s)) * 12 }

	bars := LayoutBars(spans, 4)
	labels := LayoutLabels(spans, measure, 16, 0, 4, SearchFirstFit)

	if bars.Lanes["a"] != bars.Lanes["b"] {
		t.Errorf("bars should share a lane: %v", bars.Lanes)
	}
	if labels.Lanes["a"] == labels.Lanes["b"] {
		t.Errorf("wide labels should not share a lane: %v", labels.Lanes)
	}
}
