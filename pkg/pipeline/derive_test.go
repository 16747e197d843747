package pipeline

import (
	"testing"
)

func TestDerive(t *testing.T) {
	d, err := Derive(testDocument(), "2025-06-18")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if d.TotalDays != 280 {
		t.Errorf("TotalDays = %d, want 280", d.TotalDays)
	}
	if len(d.Days) != 280 {
		t.Errorf("len(Days) = %d, want 280", len(d.Days))
	}
	if d.TodayIndex != 100 {
		t.Errorf("TodayIndex = %d, want 100", d.TodayIndex)
	}

	if len(d.Points) != 1 {
		t.Fatalf("len(Points) = %d, want 1", len(d.Points))
	}
	p := d.Points[0]
	if p.Index != 100 || p.Label != "Anatomy scan" {
		t.Errorf("Point = %+v, want index 100 label %q", p, "Anatomy scan")
	}
	if d.Days[100].Annotation != "🩺" || d.Days[100].Color != "#ff6b6b" {
		t.Errorf("Day 100 should carry the milestone emoji and color, got %+v", d.Days[100])
	}

	if len(d.Ranges) != 1 {
		t.Fatalf("len(Ranges) = %d, want 1", len(d.Ranges))
	}
	r := d.Ranges[0]
	if r.Start != 22 || r.End != 26 {
		t.Errorf("Range span = [%d, %d], want [22, 26]", r.Start, r.End)
	}
	if d.Days[22].Annotation != "" {
		t.Error("Range milestones should not annotate the day set")
	}
}

func TestDeriveTodayOutsideRange(t *testing.T) {
	d, err := Derive(testDocument(), "2025-01-01")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if d.TodayIndex != -1 {
		t.Errorf("TodayIndex = %d, want -1 for out-of-range today", d.TodayIndex)
	}
	for _, day := range d.Days {
		if day.Passed || day.Today {
			t.Fatal("No day should be passed or today before the range starts")
		}
	}
}
