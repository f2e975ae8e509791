package core

import (
	"testing"
	"time"
)

func TestMeetingSession_ResponseTableInvariant(t *testing.T) {
	s := NewMeetingSession("m1", []string{"alice", "bob"}, time.Now())
	if s.CompletedSlots() != 0 {
		t.Fatal("fresh session should have no completed slots")
	}

	s.RecordCompletion("bob", []Answer{{Question: "q", Text: "a", Timestamp: time.Now()}})
	table := s.Responses()
	if table[0] != nil {
		t.Error("alice's slot should be empty")
	}
	if len(table[1]) != 1 {
		t.Error("bob's slot should be populated")
	}
	if s.AllComplete() {
		t.Error("session should not be complete with one slot filled")
	}

	s.RecordCompletion("alice", []Answer{{Question: "q", Text: "a", Timestamp: time.Now()}})
	if !s.AllComplete() {
		t.Error("session should be complete with all slots filled")
	}
}

func TestMeetingSession_DuplicateParticipantFillsAllSlots(t *testing.T) {
	s := NewMeetingSession("m1", []string{"alice", "bob", "alice"}, time.Now())
	s.RecordCompletion("alice", []Answer{{Question: "q", Text: "a"}})
	table := s.Responses()
	if len(table[0]) == 0 || len(table[2]) == 0 {
		t.Error("every positional slot for alice should be filled")
	}
	if s.CompletedSlots() != 2 {
		t.Errorf("expected 2 completed slots, got %d", s.CompletedSlots())
	}
}

func TestMeetingSession_MarkFinalizedOnce(t *testing.T) {
	s := NewMeetingSession("m1", []string{"alice"}, time.Now())
	if !s.MarkFinalized() {
		t.Fatal("first MarkFinalized should win")
	}
	if s.MarkFinalized() {
		t.Error("second MarkFinalized should lose")
	}
	if !s.Finalized() {
		t.Error("session should report finalized")
	}
}

func TestMeetingSession_AttachSubSessionIdempotent(t *testing.T) {
	s := NewMeetingSession("m1", []string{"alice"}, time.Now())
	first := NewStandupSubSession(NewID(), "alice", threeQuestions())
	second := NewStandupSubSession(NewID(), "alice", threeQuestions())

	if got := s.AttachSubSession(first); got != first {
		t.Fatal("first attach should register the sub-session")
	}
	if got := s.AttachSubSession(second); got != first {
		t.Error("re-attach should return the existing sub-session")
	}
}

func TestMeetingSession_CloneIsolation(t *testing.T) {
	s := NewMeetingSession("m1", []string{"alice"}, time.Now())
	s.RecordCompletion("alice", []Answer{{Question: "q", Text: "a"}})
	clone := s.Clone()
	clone.Participants[0] = "mallory"
	clone.responses[0][0].Text = "mutated"
	if s.Participants[0] != "alice" || s.Responses()[0][0].Text != "a" {
		t.Error("clone should not share mutable state")
	}
}
