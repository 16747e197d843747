// Package highlight tracks an externally driven selection of day
// indices plus a tint color, and lets layout consumers observe changes.
package highlight

import (
	"slices"
	"sync"
)

// Selection is a set of highlighted day indices and the color to tint
// them with. The zero Selection highlights nothing.
type Selection struct {
	Days  []int  `json:"days"`
	Color string `json:"color,omitempty"`
}

// Contains reports whether day idx is part of the selection.
func (s Selection) Contains(idx int) bool {
	return slices.Contains(s.Days, idx)
}

// Empty reports whether the selection highlights no days.
func (s Selection) Empty() bool { return len(s.Days) == 0 }

// clone keeps watchers and Get callers from aliasing the stored slice.
func (s Selection) clone() Selection {
	return Selection{Days: slices.Clone(s.Days), Color: s.Color}
}

// Value holds the current selection and fans updates out to watchers.
// All methods are safe for concurrent use.
type Value struct {
	mu       sync.Mutex
	current  Selection
	watchers map[int]chan Selection
	nextID   int
}

// NewValue returns an empty highlight value.
func NewValue() *Value {
	return &Value{watchers: make(map[int]chan Selection)}
}

// Get returns a copy of the current selection.
func (v *Value) Get() Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current.clone()
}

// Set replaces the selection and notifies watchers. A watcher that has
// not drained its previous notification only sees the latest value.
func (v *Value) Set(s Selection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = s.clone()
	for _, ch := range v.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- v.current.clone()
	}
}

// Clear empties the selection.
func (v *Value) Clear() { v.Set(Selection{}) }

// Watch registers a watcher. The returned channel carries each new
// selection, conflated to the latest; cancel removes the watcher and
// closes the channel.
func (v *Value) Watch() (ch <-chan Selection, cancel func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	c := make(chan Selection, 1)
	v.watchers[id] = c

	cancel = func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if _, ok := v.watchers[id]; ok {
			delete(v.watchers, id)
			close(c)
		}
	}
	return c, cancel
}
