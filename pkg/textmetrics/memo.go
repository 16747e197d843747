package textmetrics

import "sync"

// memoKey identifies one measurement.
type memoKey struct {
	text string
	size float64
}

// Memo wraps a Measurer with a pure cache keyed on (text, size). The
// cache only affects performance: a cold Memo and the wrapped measurer
// always agree. Safe for concurrent use.
type Memo struct {
	inner Measurer

	mu     sync.RWMutex
	widths map[memoKey]float64
}

// NewMemo wraps inner with memoization. A nil inner uses Default().
func NewMemo(inner Measurer) *Memo {
	if inner == nil {
		inner = Default()
	}
	return &Memo{inner: inner, widths: make(map[memoKey]float64)}
}

// Measure returns the cached width, measuring on first use.
func (m *Memo) Measure(text string, size float64) float64 {
	key := memoKey{text: text, size: size}

	m.mu.RLock()
	w, ok := m.widths[key]
	m.mu.RUnlock()
	if ok {
		return w
	}

	w = m.inner.Measure(text, size)

	m.mu.Lock()
	m.widths[key] = w
	m.mu.Unlock()
	return w
}

// Len reports the number of cached measurements.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.widths)
}

var _ Measurer = (*Memo)(nil)
