package core

// MeetingRegistry owns Meeting entities and is the single source of truth for
// meeting status. All other components read it; only the engine and scheduler
// paths write it, through the operations below.
//
// Implementations SHOULD:
//   - Reject one-time specs whose scheduled instant is not strictly in the
//     future (ErrPastSchedule) and malformed specs (ErrInvalidSpec)
//   - Return defensive copies so callers cannot mutate stored state
//   - Enforce the status state machine in Transition (ErrInvalidTransition)
//     and stamp StartedAt / EndedAt on the corresponding transitions
type MeetingRegistry interface {
	// Create assigns a new unique id and scheduled status.
	Create(spec MeetingSpec) (*Meeting, error)

	// Get returns the meeting or ErrNotFound.
	Get(id string) (*Meeting, error)

	// List returns meetings where userID appears in the participant list or
	// equals the creator, in registry insertion order.
	List(userID string) ([]*Meeting, error)

	// Transition moves the meeting to next, enforcing the state machine,
	// and returns the updated meeting.
	Transition(id string, next Status) (*Meeting, error)

	// SetDuration overwrites the nominal duration with the actual duration
	// computed at finalization.
	SetDuration(id string, minutes int) error
}
