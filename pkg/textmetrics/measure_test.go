package textmetrics

import "testing"

func TestFaceMeasurerDeterministic(t *testing.T) {
	m, err := NewFaceMeasurer()
	if err != nil {
		t.Fatalf("NewFaceMeasurer: %v", err)
	}

	a := m.Measure("First kick", 11)
	b := m.Measure("First kick", 11)
	if a != b {
		t.Errorf("repeated measurements differ: %v vs %v", a, b)
	}
	if a <= 0 {
		t.Errorf("expected positive width, got %v", a)
	}
}

func TestFaceMeasurerScalesWithText(t *testing.T) {
	m, err := NewFaceMeasurer()
	if err != nil {
		t.Fatalf("NewFaceMeasurer: %v", err)
	}

	short := m.Measure("Scan", 11)
	long := m.Measure("Anatomy scan appointment", 11)
	if long <= short {
		t.Errorf("longer text not wider: %v vs %v", long, short)
	}

	small := m.Measure("Scan", 8)
	big := m.Measure("Scan", 16)
	if big <= small {
		t.Errorf("larger size not wider: %v vs %v", big, small)
	}
}

func TestFaceMeasurerEmpty(t *testing.T) {
	m, err := NewFaceMeasurer()
	if err != nil {
		t.Fatalf("NewFaceMeasurer: %v", err)
	}
	if got := m.Measure("", 11); got != 0 {
		t.Errorf("empty text = %v, want 0", got)
	}
	if got := m.Measure("x", 0); got != 0 {
		t.Errorf("zero size = %v, want 0", got)
	}
}

func TestEstimateOvercountsTypicalLabels(t *testing.T) {
	m, err := NewFaceMeasurer()
	if err != nil {
		t.Fatalf("NewFaceMeasurer: %v", err)
	}

	// The fallback must not undercount enough to cause overlap for
	// common label text.
	labels := []string{"First kick", "Week 20", "Anatomy scan", "due date"}
	for _, label := range labels {
		est := Estimate(label, 11)
		real := m.Measure(label, 11)
		if est < real {
			t.Errorf("Estimate(%q) = %v undercuts face width %v", label, est, real)
		}
	}
}

func TestMemo(t *testing.T) {
	counting := &countingMeasurer{}
	memo := NewMemo(counting)

	w1 := memo.Measure("hello", 11)
	w2 := memo.Measure("hello", 11)
	if w1 != w2 {
		t.Errorf("memo changed value: %v vs %v", w1, w2)
	}
	if counting.calls != 1 {
		t.Errorf("inner called %d times, want 1", counting.calls)
	}

	memo.Measure("hello", 12) // different size is a different key
	if counting.calls != 2 {
		t.Errorf("inner called %d times, want 2", counting.calls)
	}
	if memo.Len() != 2 {
		t.Errorf("Len() = %d, want 2", memo.Len())
	}
}

type countingMeasurer struct{ calls int }

func (c *countingMeasurer) Measure(text string, size float64) float64 {
	c.calls++
	return float64(len(text)) * size
}
