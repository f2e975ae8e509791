package core

import (
	"errors"
	"testing"
	"time"
)

func threeQuestions() [NumStandupQuestions]string {
	return [NumStandupQuestions]string{
		"What did you work on yesterday, alice?",
		"What are you working on today, alice?",
		"Do you have any blockers, alice?",
	}
}

func TestStandupSubSession_SubmitAdvancesInOrder(t *testing.T) {
	sub := NewStandupSubSession(NewID(), "alice", threeQuestions())
	now := time.Now()

	for i, text := range []string{"shipped the parser", "reviews", "none"} {
		ans, idx, err := sub.Submit(text, now)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if idx != i {
			t.Fatalf("submit %d answered index %d", i, idx)
		}
		if ans.Question != threeQuestions()[i] {
			t.Errorf("answer %d carries question %q", i, ans.Question)
		}
		if !ans.Timestamp.Equal(now) {
			t.Errorf("answer %d missing timestamp", i)
		}
	}

	if !sub.IsComplete() {
		t.Error("sub-session should be complete after three answers")
	}
	if _, ok := sub.NextQuestion(); ok {
		t.Error("complete sub-session should have no next question")
	}
	if got := len(sub.Answers()); got != NumStandupQuestions {
		t.Errorf("expected %d answers, got %d", NumStandupQuestions, got)
	}
}

func TestStandupSubSession_SubmitAfterComplete(t *testing.T) {
	sub := NewStandupSubSession(NewID(), "alice", threeQuestions())
	now := time.Now()
	for i := 0; i < NumStandupQuestions; i++ {
		if _, _, err := sub.Submit("ok", now); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := sub.Submit("extra", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestStandupSubSession_AnswersCopied(t *testing.T) {
	sub := NewStandupSubSession(NewID(), "alice", threeQuestions())
	sub.Submit("first", time.Now())
	answers := sub.Answers()
	answers[0].Text = "mutated"
	if sub.Answers()[0].Text != "first" {
		t.Error("answers slice should be copied on read")
	}
}

func TestIsNegativeAnswer(t *testing.T) {
	negative := []string{"no", "None", "nope.", "nothing today", "no blockers!", "N/A"}
	for _, s := range negative {
		if !IsNegativeAnswer(s) {
			t.Errorf("%q should read as negative", s)
		}
	}
	positive := []string{"I am blocked by a failing build, urgent", "waiting on infra", "notary access"}
	for _, s := range positive {
		if IsNegativeAnswer(s) {
			t.Errorf("%q should not read as negative", s)
		}
	}
}
