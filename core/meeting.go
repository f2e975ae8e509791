package core

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a meeting.
//
// Transitions are monotone along scheduled → in-progress → completed, with
// cancelled reachable from the two non-terminal states only. No transition
// leaves completed or cancelled.
type Status string

const (
	// StatusScheduled is the initial state of a created meeting.
	StatusScheduled Status = "scheduled"
	// StatusInProgress marks a meeting whose session is live.
	StatusInProgress Status = "in-progress"
	// StatusCompleted is the terminal state of a finalized meeting.
	StatusCompleted Status = "completed"
	// StatusCancelled is the terminal state of an aborted meeting.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is a legal step of the
// meeting state machine.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Recurrence selects how often a meeting's trigger fires.
type Recurrence string

const (
	// RecurrenceNone schedules a single one-time trigger.
	RecurrenceNone Recurrence = "none"
	// RecurrenceDaily fires every weekday (Monday–Friday) at the
	// scheduled minute/hour in the meeting's timezone.
	RecurrenceDaily Recurrence = "daily"
	// RecurrenceWeekly is declared for forward compatibility but has no
	// specified cadence; scheduling a weekly meeting fails fast.
	RecurrenceWeekly Recurrence = "weekly"
)

// MeetingSpec describes a meeting to be created via the registry.
type MeetingSpec struct {
	Title              string     `json:"title"`
	Participants       []string   `json:"participants"`
	ScheduledAt        time.Time  `json:"scheduledAt"`
	Timezone           string     `json:"timezone"`
	DurationMinutes    int        `json:"durationMinutes"`
	Recurrence         Recurrence `json:"recurrence"`
	VirtualFacilitator bool       `json:"virtualFacilitator"`
	CreatedBy          string     `json:"createdBy"`
}

// Meeting is a scheduled check-in event. It is owned exclusively by the
// registry; all status mutation goes through MeetingRegistry.Transition so the
// registry remains the single source of truth for meeting status.
type Meeting struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Participants       []string   `json:"participants"`
	ScheduledAt        time.Time  `json:"scheduledAt"`
	Timezone           string     `json:"timezone"`
	DurationMinutes    int        `json:"durationMinutes"`
	Recurrence         Recurrence `json:"recurrence"`
	VirtualFacilitator bool       `json:"virtualFacilitator"`
	Status             Status     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	EndedAt            *time.Time `json:"endedAt,omitempty"`
	CreatedBy          string     `json:"createdBy"`
}

// HasParticipant reports whether id appears in the participant list.
func (m *Meeting) HasParticipant(id string) bool {
	for _, p := range m.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the meeting safe for independent mutation.
func (m *Meeting) Clone() *Meeting {
	clone := *m
	clone.Participants = make([]string, len(m.Participants))
	copy(clone.Participants, m.Participants)
	if m.StartedAt != nil {
		t := *m.StartedAt
		clone.StartedAt = &t
	}
	if m.EndedAt != nil {
		t := *m.EndedAt
		clone.EndedAt = &t
	}
	return &clone
}

// NewID generates a new unique identifier for meetings, sub-sessions and
// notifications.
func NewID() string { return uuid.NewString() }
