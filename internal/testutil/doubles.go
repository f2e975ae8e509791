package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/standupmesh/core"
)

// SummaryDispatch records one SendSummary call.
type SummaryDispatch struct {
	Participants []string
	Summary      core.Summary
	Title        string
}

// AlertDispatch records one SendEscalationAlert call.
type AlertDispatch struct {
	Recipients []string
	Alert      core.EscalationAlert
}

// NoteDispatch records one SendNotification call.
type NoteDispatch struct {
	Participants []string
	Note         core.Notification
}

// RecorderNotifier is a core.Notifier that records every dispatch. Safe for
// concurrent use.
type RecorderNotifier struct {
	mu        sync.Mutex
	summaries []SummaryDispatch
	alerts    []AlertDispatch
	notes     []NoteDispatch
	Err       error // returned from every method when set
}

// SendSummary implements core.Notifier.
func (n *RecorderNotifier) SendSummary(_ context.Context, participants []string, summary core.Summary, title string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.summaries = append(n.summaries, SummaryDispatch{Participants: participants, Summary: summary, Title: title})
	return n.Err
}

// SendEscalationAlert implements core.Notifier.
func (n *RecorderNotifier) SendEscalationAlert(_ context.Context, recipients []string, alert core.EscalationAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, AlertDispatch{Recipients: recipients, Alert: alert})
	return n.Err
}

// SendNotification implements core.Notifier.
func (n *RecorderNotifier) SendNotification(_ context.Context, participants []string, note core.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, NoteDispatch{Participants: participants, Note: note})
	return n.Err
}

// Summaries returns the recorded summary dispatches.
func (n *RecorderNotifier) Summaries() []SummaryDispatch {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SummaryDispatch(nil), n.summaries...)
}

// Alerts returns the recorded escalation dispatches.
func (n *RecorderNotifier) Alerts() []AlertDispatch {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]AlertDispatch(nil), n.alerts...)
}

// Notes returns the recorded generic dispatches.
func (n *RecorderNotifier) Notes() []NoteDispatch {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]NoteDispatch(nil), n.notes...)
}

// RecorderGenerator wraps a core.ConversationGenerator and records calls so
// tests can assert which collaborator operations ran and with what input.
type RecorderGenerator struct {
	Inner core.ConversationGenerator

	mu             sync.Mutex
	startCalls     []string
	ackCalls       []int
	summarizeCalls []core.MeetingData
	analyzeCalls   [][]core.Blocker
}

// StartSession implements core.ConversationGenerator.
func (g *RecorderGenerator) StartSession(ctx context.Context, participantName string) (core.StandupScript, error) {
	g.mu.Lock()
	g.startCalls = append(g.startCalls, participantName)
	g.mu.Unlock()
	return g.Inner.StartSession(ctx, participantName)
}

// Acknowledge implements core.ConversationGenerator.
func (g *RecorderGenerator) Acknowledge(ctx context.Context, priorAnswer string, questionIndex int) (string, error) {
	g.mu.Lock()
	g.ackCalls = append(g.ackCalls, questionIndex)
	g.mu.Unlock()
	return g.Inner.Acknowledge(ctx, priorAnswer, questionIndex)
}

// Summarize implements core.ConversationGenerator.
func (g *RecorderGenerator) Summarize(ctx context.Context, data core.MeetingData) (core.Summary, error) {
	g.mu.Lock()
	g.summarizeCalls = append(g.summarizeCalls, data)
	g.mu.Unlock()
	return g.Inner.Summarize(ctx, data)
}

// AnalyzeBlockers implements core.ConversationGenerator.
func (g *RecorderGenerator) AnalyzeBlockers(ctx context.Context, blockers []core.Blocker) (core.BlockerAnalysis, error) {
	g.mu.Lock()
	g.analyzeCalls = append(g.analyzeCalls, blockers)
	g.mu.Unlock()
	return g.Inner.AnalyzeBlockers(ctx, blockers)
}

// StartCalls returns the participant names passed to StartSession.
func (g *RecorderGenerator) StartCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.startCalls...)
}

// AckCalls returns the question indexes passed to Acknowledge.
func (g *RecorderGenerator) AckCalls() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.ackCalls...)
}

// SummarizeCalls returns the meeting data passed to Summarize.
func (g *RecorderGenerator) SummarizeCalls() []core.MeetingData {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]core.MeetingData(nil), g.summarizeCalls...)
}

// AnalyzeCalls returns the blocker lists passed to AnalyzeBlockers.
func (g *RecorderGenerator) AnalyzeCalls() [][]core.Blocker {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([][]core.Blocker(nil), g.analyzeCalls...)
}

// FailingGenerator is a core.ConversationGenerator whose every method fails
// with Err, for exercising collaborator degradation paths.
type FailingGenerator struct {
	Err error
}

// StartSession implements core.ConversationGenerator.
func (g *FailingGenerator) StartSession(context.Context, string) (core.StandupScript, error) {
	return core.StandupScript{}, g.Err
}

// Acknowledge implements core.ConversationGenerator.
func (g *FailingGenerator) Acknowledge(context.Context, string, int) (string, error) {
	return "", g.Err
}

// Summarize implements core.ConversationGenerator.
func (g *FailingGenerator) Summarize(context.Context, core.MeetingData) (core.Summary, error) {
	return core.Summary{}, g.Err
}

// AnalyzeBlockers implements core.ConversationGenerator.
func (g *FailingGenerator) AnalyzeBlockers(context.Context, []core.Blocker) (core.BlockerAnalysis, error) {
	return core.BlockerAnalysis{}, g.Err
}

// RecorderTracker is a core.TaskTracker that records sync calls.
type RecorderTracker struct {
	mu    sync.Mutex
	syncs []core.MeetingData
	Err   error
}

// SyncFromMeeting implements core.TaskTracker.
func (t *RecorderTracker) SyncFromMeeting(_ context.Context, data core.MeetingData, _ core.Summary) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.syncs = append(t.syncs, data)
	return t.Err
}

// Syncs returns the recorded meeting data records.
func (t *RecorderTracker) Syncs() []core.MeetingData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.MeetingData(nil), t.syncs...)
}
