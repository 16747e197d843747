package errors

import (
	"fmt"
	"strings"
)

// FieldError describes a single validation failure at a field path, for
// example "startDate" or "milestones[2].label".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// FieldErrors collects validation failures so a caller can report every
// problem in one pass instead of stopping at the first.
type FieldErrors []FieldError

// Error joins all failures into one message, one per line.
func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "\n")
}

// Add appends a failure with a formatted message.
func (e *FieldErrors) Add(path, format string, args ...any) {
	*e = append(*e, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// OrNil returns the collection as an error, or nil when empty.
func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// MilestonePath formats the field path for milestone n (1-based) as
// used in validation messages: "Milestone 3 endDate".
func MilestonePath(n int, field string) string {
	return fmt.Sprintf("Milestone %d %s", n, field)
}

// AsFieldErrors extracts a FieldErrors collection from err, if present.
func AsFieldErrors(err error) (FieldErrors, bool) {
	fe, ok := err.(FieldErrors)
	return fe, ok
}
