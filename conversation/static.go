package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/standupmesh/core"
)

// acknowledgments are the fixed per-question follow-up utterances.
var acknowledgments = [core.NumStandupQuestions]string{
	"Thanks for the update, sounds like solid progress.",
	"Got it, good luck with today's work.",
	"Thanks for flagging that, it will be raised in the summary.",
}

// Static is a deterministic ConversationGenerator: rendered question
// templates, fixed acknowledgments and keyword-driven summarization and
// analysis. It never fails on collaborator grounds, which makes it the
// default generator and the degradation target for LLM-backed ones.
type Static struct{}

// NewStatic constructs the deterministic generator.
func NewStatic() *Static { return &Static{} }

// StartSession implements core.ConversationGenerator.
func (g *Static) StartSession(_ context.Context, participantName string) (core.StandupScript, error) {
	questions, err := RenderQuestions(participantName)
	if err != nil {
		return core.StandupScript{}, err
	}
	return core.StandupScript{SessionID: core.NewID(), Questions: questions}, nil
}

// Acknowledge implements core.ConversationGenerator.
func (g *Static) Acknowledge(_ context.Context, priorAnswer string, questionIndex int) (string, error) {
	if questionIndex < 0 || questionIndex >= core.NumStandupQuestions {
		return "", fmt.Errorf("question index %d out of range", questionIndex)
	}
	if questionIndex == core.NumStandupQuestions-1 && core.IsNegativeAnswer(priorAnswer) {
		return "Great, no blockers then.", nil
	}
	return acknowledgments[questionIndex], nil
}

// Summarize implements core.ConversationGenerator.
func (g *Static) Summarize(_ context.Context, data core.MeetingData) (core.Summary, error) {
	blockers := ExtractBlockers(data)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Standup summary for %q (%d min, %d participants):\n", data.Title, data.DurationMinutes, len(data.Participants))
	sb.WriteString(Transcript(data))
	if len(blockers) == 0 {
		sb.WriteString("No blockers were reported.\n")
	} else {
		fmt.Fprintf(&sb, "%d blocker(s) were reported.\n", len(blockers))
	}
	return core.Summary{
		Participants: data.Participants,
		Text:         sb.String(),
		Blockers:     blockers,
	}, nil
}

// AnalyzeBlockers implements core.ConversationGenerator.
func (g *Static) AnalyzeBlockers(_ context.Context, blockers []core.Blocker) (core.BlockerAnalysis, error) {
	if len(blockers) == 0 {
		return NoBlockersAnalysis(), nil
	}
	var sb strings.Builder
	escalate := false
	for _, b := range blockers {
		fmt.Fprintf(&sb, "[%s] %s: %s\n", categorize(b.Text), b.Participant, b.Text)
		if needsEscalation(b.Text) {
			escalate = true
		}
	}
	if escalate {
		sb.WriteString("Escalation recommended: at least one blocker looks time-critical.\n")
	}
	return core.BlockerAnalysis{Text: sb.String(), RequiresEscalation: escalate}, nil
}
