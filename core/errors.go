package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a meeting, session or sub-session for
	// the given id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when an operation would violate the
	// meeting status state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPastSchedule is returned when a one-time meeting's scheduled
	// instant is not strictly in the future.
	ErrPastSchedule = errors.New("scheduled time is not in the future")

	// ErrNotInvited is returned when a joiner is not a listed participant
	// of the meeting.
	ErrNotInvited = errors.New("participant is not invited")

	// ErrInvalidSpec is returned when a meeting spec is malformed (unknown
	// timezone, empty participant list, unsupported recurrence).
	ErrInvalidSpec = errors.New("invalid meeting spec")
)

// CollaboratorError wraps a downstream collaborator failure (conversation
// generation, notification delivery, task sync) with the meeting id and the
// finalization step it occurred in. It never aborts finalization; the engine
// logs it and substitutes a placeholder result.
type CollaboratorError struct {
	MeetingID string
	Step      string
	Err       error
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator failure during %s for meeting %s: %v", e.Step, e.MeetingID, e.Err)
}

// Unwrap returns the underlying collaborator error.
func (e *CollaboratorError) Unwrap() error { return e.Err }
