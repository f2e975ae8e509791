package core

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// NumStandupQuestions is the fixed length of the standup question flow.
const NumStandupQuestions = 3

// Answer records one collected standup response together with the question it
// answered and the collection instant.
type Answer struct {
	Question  string    `json:"question"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// StandupSubSession tracks one participant's progress through the fixed
// three-question flow. It is a pure accumulator: it records answers and
// advances its own index but never decides meeting-level completion.
//
// Contract:
//   - Questions are asked strictly in order; no skipping, no re-ordering
//   - Submit appends an answer for the current question and advances
//   - IsComplete becomes true once the index reaches NumStandupQuestions
//   - Mutation happens only through Submit; accessors return copies
type StandupSubSession struct {
	ID          string
	Participant string

	mu        sync.RWMutex
	questions [NumStandupQuestions]string
	answers   []Answer
	index     int
}

// NewStandupSubSession creates a sub-session for a participant with the
// questions already rendered with the participant's name.
func NewStandupSubSession(id, participant string, questions [NumStandupQuestions]string) *StandupSubSession {
	return &StandupSubSession{
		ID:          id,
		Participant: participant,
		questions:   questions,
		answers:     make([]Answer, 0, NumStandupQuestions),
	}
}

// Submit records text as the answer to the current question and advances the
// flow. It returns the recorded answer and the index of the question it
// answered. Submitting to a completed sub-session fails.
func (s *StandupSubSession) Submit(text string, now time.Time) (Answer, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= NumStandupQuestions {
		return Answer{}, 0, fmt.Errorf("standup flow already complete: %w", ErrInvalidTransition)
	}
	answered := s.index
	ans := Answer{Question: s.questions[answered], Text: text, Timestamp: now}
	s.answers = append(s.answers, ans)
	s.index++
	return ans, answered, nil
}

// NextQuestion returns the first unanswered question, or false when the flow
// is complete.
func (s *StandupSubSession) NextQuestion() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index >= NumStandupQuestions {
		return "", false
	}
	return s.questions[s.index], true
}

// CurrentIndex returns the zero-based index of the next question.
func (s *StandupSubSession) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// IsComplete reports whether all questions have been answered.
func (s *StandupSubSession) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index >= NumStandupQuestions
}

// Answers returns a copy of the collected answers in submission order.
func (s *StandupSubSession) Answers() []Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]Answer, len(s.answers))
	copy(answers, s.answers)
	return answers
}

// negationTokens are words that mark a blocker answer as "no blockers".
var negationTokens = map[string]bool{
	"no":      true,
	"none":    true,
	"nope":    true,
	"nothing": true,
	"nah":     true,
	"n/a":     true,
}

// IsNegativeAnswer reports whether the normalized answer text contains a
// negation token such as "no" or "none". Used to short-circuit the blocker
// question acknowledgment and blocker extraction.
func IsNegativeAnswer(text string) bool {
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?'\"")
		if negationTokens[tok] {
			return true
		}
	}
	return false
}
