package core

import (
	"sync"
	"time"
)

// MeetingSession is the live, ephemeral execution state of an in-progress
// meeting. It holds an immutable participant snapshot, a positional response
// table, the participant → sub-session mapping and the session start instant.
// It is created when a meeting transitions to in-progress and destroyed when
// finalization completes. At most one MeetingSession exists per meeting id.
//
// Contract:
//   - responses[i] is populated if and only if participants[i]'s sub-session
//     is complete (RecordCompletion fills every positional slot holding the
//     participant's id, which keeps the invariant well-defined when an id
//     appears more than once)
//   - MarkFinalized returns true exactly once, guarding double finalization
//   - Accessors return defensive copies
type MeetingSession struct {
	MeetingID    string
	Participants []string
	StartedAt    time.Time

	mu        sync.RWMutex
	responses [][]Answer
	subs      map[string]*StandupSubSession
	finalized bool
}

// NewMeetingSession creates a session for a meeting with an empty response
// table sized to the participant list.
func NewMeetingSession(meetingID string, participants []string, startedAt time.Time) *MeetingSession {
	snapshot := make([]string, len(participants))
	copy(snapshot, participants)
	return &MeetingSession{
		MeetingID:    meetingID,
		Participants: snapshot,
		StartedAt:    startedAt,
		responses:    make([][]Answer, len(snapshot)),
		subs:         make(map[string]*StandupSubSession),
	}
}

// SubSession returns the participant's sub-session if one exists.
func (s *MeetingSession) SubSession(participant string) (*StandupSubSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[participant]
	return sub, ok
}

// AttachSubSession registers a sub-session for its participant. If one is
// already registered the existing sub-session is returned unchanged, making
// re-joins idempotent.
func (s *MeetingSession) AttachSubSession(sub *StandupSubSession) *StandupSubSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.subs[sub.Participant]; ok {
		return existing
	}
	s.subs[sub.Participant] = sub
	return sub
}

// RecordCompletion writes a completed sub-session's answers into the response
// table at every positional index holding the participant's id.
func (s *MeetingSession) RecordCompletion(participant string, answers []Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.Participants {
		if p == participant {
			slot := make([]Answer, len(answers))
			copy(slot, answers)
			s.responses[i] = slot
		}
	}
}

// CompletedSlots counts the filled positional response slots.
func (s *MeetingSession) CompletedSlots() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, slot := range s.responses {
		if len(slot) > 0 {
			n++
		}
	}
	return n
}

// AllComplete reports whether every positional slot is filled.
func (s *MeetingSession) AllComplete() bool {
	return s.CompletedSlots() == len(s.Participants)
}

// MarkFinalized flips the finalized flag and reports whether this call was
// the one that flipped it. The flag is monotone: once set it never clears,
// so concurrent completion checks trigger finalization exactly once.
func (s *MeetingSession) MarkFinalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return false
	}
	s.finalized = true
	return true
}

// Finalized reports whether finalization has been claimed.
func (s *MeetingSession) Finalized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finalized
}

// Responses returns a deep copy of the positional response table.
func (s *MeetingSession) Responses() [][]Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table := make([][]Answer, len(s.responses))
	for i, slot := range s.responses {
		if slot == nil {
			continue
		}
		table[i] = make([]Answer, len(slot))
		copy(table[i], slot)
	}
	return table
}

// Clone returns a copy of the session safe for external inspection. Response
// slots are deep-copied; sub-session pointers are shared because sub-sessions
// are internally synchronized.
func (s *MeetingSession) Clone() *MeetingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &MeetingSession{
		MeetingID:    s.MeetingID,
		Participants: make([]string, len(s.Participants)),
		StartedAt:    s.StartedAt,
		responses:    make([][]Answer, len(s.responses)),
		subs:         make(map[string]*StandupSubSession, len(s.subs)),
		finalized:    s.finalized,
	}
	copy(clone.Participants, s.Participants)
	for i, slot := range s.responses {
		if slot == nil {
			continue
		}
		clone.responses[i] = make([]Answer, len(slot))
		copy(clone.responses[i], slot)
	}
	for k, v := range s.subs {
		clone.subs[k] = v
	}
	return clone
}
