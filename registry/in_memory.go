package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/standupmesh/core"
)

// Options configures the in-memory registry.
type Options struct {
	// Now supplies wall-clock time for create-time validation and
	// transition timestamps. Defaults to time.Now.
	Now func() time.Time
}

// InMemoryRegistry is a volatile MeetingRegistry implementation storing
// meetings in a process local map. It is safe for concurrent access and best
// suited for tests or single-process deployments. Each returned meeting is
// cloned to prevent external mutation of internal state.
type InMemoryRegistry struct {
	mu       sync.RWMutex
	meetings map[string]*core.Meeting
	order    []string
	now      func() time.Time
}

// NewInMemoryRegistry constructs an empty in‑memory meeting registry.
func NewInMemoryRegistry(optFns ...func(o *Options)) *InMemoryRegistry {
	opts := Options{Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryRegistry{meetings: make(map[string]*core.Meeting), now: opts.Now}
}

// Create validates the spec, assigns a new unique id and stores the meeting
// with scheduled status.
func (r *InMemoryRegistry) Create(spec core.MeetingSpec) (*core.Meeting, error) {
	if len(spec.Participants) == 0 {
		return nil, fmt.Errorf("participant list is empty: %w", core.ErrInvalidSpec)
	}
	if spec.Recurrence == core.RecurrenceWeekly {
		return nil, fmt.Errorf("weekly recurrence is not supported: %w", core.ErrInvalidSpec)
	}
	tz := spec.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", spec.Timezone, core.ErrInvalidSpec)
	}
	if spec.Recurrence == core.RecurrenceNone && !spec.ScheduledAt.After(r.now()) {
		return nil, fmt.Errorf("scheduled at %s: %w", spec.ScheduledAt, core.ErrPastSchedule)
	}

	participants := make([]string, len(spec.Participants))
	copy(participants, spec.Participants)

	m := &core.Meeting{
		ID:                 core.NewID(),
		Title:              spec.Title,
		Participants:       participants,
		ScheduledAt:        spec.ScheduledAt,
		Timezone:           tz,
		DurationMinutes:    spec.DurationMinutes,
		Recurrence:         spec.Recurrence,
		VirtualFacilitator: spec.VirtualFacilitator,
		Status:             core.StatusScheduled,
		CreatedAt:          r.now(),
		CreatedBy:          spec.CreatedBy,
	}
	if m.Recurrence == "" {
		m.Recurrence = core.RecurrenceNone
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[m.ID] = m
	r.order = append(r.order, m.ID)
	return m.Clone(), nil
}

// Get returns a clone of the meeting or ErrNotFound.
func (r *InMemoryRegistry) Get(id string) (*core.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, fmt.Errorf("meeting %s: %w", id, core.ErrNotFound)
	}
	return m.Clone(), nil
}

// List returns meetings where userID is a participant or the creator, in
// registry insertion order.
func (r *InMemoryRegistry) List(userID string) ([]*core.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*core.Meeting
	for _, id := range r.order {
		m := r.meetings[id]
		if m.CreatedBy == userID || m.HasParticipant(userID) {
			res = append(res, m.Clone())
		}
	}
	return res, nil
}

// Transition moves the meeting to next, enforcing the status state machine
// and stamping StartedAt / EndedAt.
func (r *InMemoryRegistry) Transition(id string, next core.Status) (*core.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, fmt.Errorf("meeting %s: %w", id, core.ErrNotFound)
	}
	if !m.Status.CanTransition(next) {
		return nil, fmt.Errorf("%s -> %s: %w", m.Status, next, core.ErrInvalidTransition)
	}
	m.Status = next
	now := r.now()
	switch next {
	case core.StatusInProgress:
		m.StartedAt = &now
	case core.StatusCompleted, core.StatusCancelled:
		m.EndedAt = &now
	}
	return m.Clone(), nil
}

// SetDuration overwrites the nominal duration with the actual value computed
// at finalization.
func (r *InMemoryRegistry) SetDuration(id string, minutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return fmt.Errorf("meeting %s: %w", id, core.ErrNotFound)
	}
	m.DurationMinutes = minutes
	return nil
}
