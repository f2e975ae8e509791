package conversation

import (
	"fmt"
	"strings"

	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/internal/util"
)

// questionTemplates are the fixed three standup questions, personalized with
// the participant's name at session start.
var questionTemplates = [core.NumStandupQuestions]string{
	"What did you work on yesterday, {{.Name}}?",
	"What are you working on today, {{.Name}}?",
	"Do you have any blockers, {{.Name}}?",
}

// RenderQuestions renders the fixed question templates with the participant's
// name. Shared by every generator because the question flow itself is fixed;
// only acknowledgments, summaries and analyses vary by backend.
func RenderQuestions(participantName string) ([core.NumStandupQuestions]string, error) {
	var questions [core.NumStandupQuestions]string
	for i, tmpl := range questionTemplates {
		q, err := util.RenderTemplate(tmpl, map[string]any{"Name": participantName})
		if err != nil {
			return questions, fmt.Errorf("render question %d: %w", i, err)
		}
		questions[i] = q
	}
	return questions, nil
}

// ExtractBlockers pulls non-negative answers to the blocker question out of
// the positional response table, attributed to the participant at that slot.
func ExtractBlockers(data core.MeetingData) []core.Blocker {
	var blockers []core.Blocker
	seen := make(map[string]bool)
	for i, slot := range data.Responses {
		if len(slot) < core.NumStandupQuestions {
			continue
		}
		participant := data.Participants[i]
		if seen[participant] {
			continue
		}
		seen[participant] = true
		ans := slot[core.NumStandupQuestions-1]
		if core.IsNegativeAnswer(ans.Text) {
			continue
		}
		blockers = append(blockers, core.Blocker{
			Participant: participant,
			Text:        ans.Text,
			Timestamp:   ans.Timestamp,
		})
	}
	return blockers
}

// Transcript formats the response table as a readable per-participant
// transcript, used as prompt context by the LLM-backed generators and as the
// body of the static summary.
func Transcript(data core.MeetingData) string {
	var sb strings.Builder
	for i, slot := range data.Responses {
		if len(slot) == 0 {
			fmt.Fprintf(&sb, "%s: (no report)\n", data.Participants[i])
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", data.Participants[i])
		for _, ans := range slot {
			fmt.Fprintf(&sb, "  Q: %s\n  A: %s\n", ans.Question, ans.Text)
		}
	}
	return sb.String()
}

// NoBlockersAnalysis is the fixed result used when the blocker list is empty;
// the analysis collaborator is not invoked in that case.
func NoBlockersAnalysis() core.BlockerAnalysis {
	return core.BlockerAnalysis{Text: "No blockers reported.", RequiresEscalation: false}
}

// escalationKeywords mark a blocker as worth escalating. Keyword matching is
// an illustrative default policy, not an orchestration guarantee.
var escalationKeywords = []string{"urgent", "critical", "asap", "outage", "production down", "deadline"}

func needsEscalation(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range escalationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func categorize(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "build") || strings.Contains(lower, "ci") || strings.Contains(lower, "test"):
		return "build/ci"
	case strings.Contains(lower, "waiting") || strings.Contains(lower, "depend") || strings.Contains(lower, "blocked by"):
		return "dependency"
	case strings.Contains(lower, "access") || strings.Contains(lower, "permission") || strings.Contains(lower, "credential"):
		return "access"
	default:
		return "other"
	}
}
