package appointment

import (
	"errors"
	"testing"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusActive, StatusAttended, StatusMissed, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "pending", "SCHEDULED", "done"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusScheduled, StatusActive, StatusAttended, StatusMissed, StatusCancelled}

	// From any non-cancelled status, every move is allowed.
	for _, from := range []Status{StatusScheduled, StatusActive, StatusAttended, StatusMissed} {
		for _, to := range all {
			if !CanTransition(from, to) {
				t.Errorf("expected %q -> %q to be allowed", from, to)
			}
		}
	}

	// Cancelled is terminal: only cancelled -> cancelled is allowed.
	for _, to := range all {
		got := CanTransition(StatusCancelled, to)
		want := to == StatusCancelled
		if got != want {
			t.Errorf("CanTransition(cancelled, %q) = %v, want %v", to, got, want)
		}
	}

	// An empty current status means a new record; any initial status goes.
	for _, to := range all {
		if !CanTransition("", to) {
			t.Errorf("expected new record to accept initial status %q", to)
		}
	}
}

func TestTransitionError(t *testing.T) {
	err := error(&TransitionError{Current: StatusCancelled, Requested: StatusScheduled})

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatal("expected errors.As to unwrap *TransitionError")
	}
	if te.Current != StatusCancelled || te.Requested != StatusScheduled {
		t.Errorf("unexpected fields: %+v", te)
	}
	if te.Error() == "" {
		t.Error("expected non-empty message")
	}
}
