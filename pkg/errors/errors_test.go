package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidDate, "invalid date: %s", "2025-13-40")
	want := "INVALID_DATE: invalid date: 2025-13-40"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "commit config")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if !Is(err, ErrCodeNetwork) {
		t.Error("Is() did not match code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() matched wrong code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnauthorized, "bad pin")); got != ErrCodeUnauthorized {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidConfig, "due date before start")); got != "due date before start" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestFieldErrors(t *testing.T) {
	var errs FieldErrors
	if errs.OrNil() != nil {
		t.Error("empty collection should be nil error")
	}

	errs.Add("startDate", "must be YYYY-MM-DD")
	errs.Add(MilestonePath(2, "label"), "cannot be empty")

	err := errs.OrNil()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "startDate: must be YYYY-MM-DD\nMilestone 2 label: cannot be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	fe, ok := AsFieldErrors(err)
	if !ok || len(fe) != 2 {
		t.Errorf("AsFieldErrors = %v, %v", fe, ok)
	}
}
