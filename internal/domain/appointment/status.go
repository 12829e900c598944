package appointment

import "fmt"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusAttended  Status = "attended"
	StatusMissed    Status = "missed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusScheduled: true,
	StatusActive:    true,
	StatusAttended:  true,
	StatusMissed:    true,
	StatusCancelled: true,
}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool { return validStatuses[s] }

// CanTransition reports whether an appointment may move from current to next.
// An empty current status means a new record, for which any initial status is
// permitted. Cancelled is terminal: once cancelled, only cancelled is allowed.
func CanTransition(current, next Status) bool {
	if current == "" {
		return true
	}
	if current == StatusCancelled && next != StatusCancelled {
		return false
	}
	return true
}

// TransitionError is the business-rule error returned when a status update
// would reinstate a cancelled appointment. It is distinct from field
// validation errors so callers can map it separately.
type TransitionError struct {
	Current   Status
	Requested Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %q to %q: cancelled appointments cannot be reinstated",
		e.Current, e.Requested)
}
