package core

import (
	"context"
	"time"
)

// StandupScript is the conversational opening for one participant: a session
// id and the three questions rendered with the participant's name.
type StandupScript struct {
	SessionID string                      `json:"sessionId"`
	Questions [NumStandupQuestions]string `json:"questions"`
}

// MeetingData is the record assembled by the finalizer and handed to the
// summarization and task-sync collaborators.
type MeetingData struct {
	MeetingID       string     `json:"meetingId"`
	Title           string     `json:"title"`
	Participants    []string   `json:"participants"`
	Responses       [][]Answer `json:"responses"`
	StartedAt       time.Time  `json:"startedAt"`
	DurationMinutes int        `json:"durationMinutes"`
}

// Blocker is one extracted impediment attributed to a participant.
type Blocker struct {
	Participant string    `json:"participant"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

// Summary is the narrative meeting summary plus the extracted blocker list.
type Summary struct {
	Participants []string  `json:"participants"`
	Text         string    `json:"text"`
	Blockers     []Blocker `json:"blockers"`
}

// BlockerAnalysis categorizes blockers and recommends whether to escalate.
type BlockerAnalysis struct {
	Text               string `json:"text"`
	RequiresEscalation bool   `json:"requiresEscalation"`
}

// ConversationGenerator produces the conversational surface of a standup:
// opening questions, per-answer acknowledgments, the meeting summary and the
// blocker analysis. Implementations may degrade to fixed placeholder text
// when the underlying capability is unavailable; callers must tolerate
// placeholder output without special-casing it. Errors are treated as
// collaborator failures and never abort orchestration.
type ConversationGenerator interface {
	StartSession(ctx context.Context, participantName string) (StandupScript, error)
	Acknowledge(ctx context.Context, priorAnswer string, questionIndex int) (string, error)
	Summarize(ctx context.Context, data MeetingData) (Summary, error)
	AnalyzeBlockers(ctx context.Context, blockers []Blocker) (BlockerAnalysis, error)
}

// Notification is a generic participant-facing message.
type Notification struct {
	MeetingID string `json:"meetingId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// EscalationAlert is dispatched to the configured escalation recipients when
// blocker analysis signals escalation.
type EscalationAlert struct {
	MeetingID    string    `json:"meetingId"`
	MeetingTitle string    `json:"meetingTitle"`
	Analysis     string    `json:"analysis"`
	Blockers     []Blocker `json:"blockers"`
}

// Notifier delivers meeting messages. All methods are fire-and-forget from
// the orchestrator's perspective: delivery failures are logged and never
// propagate as core errors.
type Notifier interface {
	SendSummary(ctx context.Context, participants []string, summary Summary, title string) error
	SendEscalationAlert(ctx context.Context, recipients []string, alert EscalationAlert) error
	SendNotification(ctx context.Context, participants []string, note Notification) error
}

// TaskTracker synchronizes external work-item state from a finalized meeting.
// Best-effort; failures are non-fatal.
type TaskTracker interface {
	SyncFromMeeting(ctx context.Context, data MeetingData, summary Summary) error
}
