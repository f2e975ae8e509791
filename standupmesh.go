// Package standupmesh provides a high-level façade over the core Engine and
// its collaborator abstractions (meeting registry, trigger scheduler,
// conversation generation, notification & task sync) for running fully
// automated standup meetings. Most applications interact with this package by:
//  1. Creating a StandupMesh via New() (optionally overriding default in-memory services)
//  2. Scheduling meetings (one-time or weekday-recurring) with ScheduleMeeting
//  3. Letting participants join and answer the three standup questions; the
//     meeting finalizes itself once everyone is done
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply an LLM-backed conversation
// generator, a real notifier and a structured logger.
package standupmesh

import (
	"context"

	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/engine"
	"github.com/hupe1980/standupmesh/logging"
)

// Options configures the StandupMesh instance.
type Options struct {
	// Registry stores meeting entities (defaults to an in-memory registry).
	Registry core.MeetingRegistry

	// Scheduler arms meeting triggers (defaults to the wall-clock timer
	// scheduler).
	Scheduler core.Scheduler

	// Generator produces standup questions, acknowledgments, summaries and
	// blocker analyses. Defaults to the deterministic Static generator; swap
	// in conversation/openai or conversation/anthropic for LLM-backed
	// conversations.
	Generator core.ConversationGenerator

	// Notifier delivers meeting summaries, escalation alerts and lifecycle
	// notifications (defaults to the log notifier).
	Notifier core.Notifier

	// Tracker syncs work items from finalized meetings (defaults to the
	// in-memory tracker).
	Tracker core.TaskTracker

	// EscalationRecipients receive alerts when a meeting's blocker analysis
	// recommends escalation.
	EscalationRecipients []string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// StandupMesh is the high-level façade aggregating the underlying engine and
// its collaborators.
type StandupMesh struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new StandupMesh instance with optional overrides. Any unset
// collaborator is initialized with its default implementation.
func New(optFns ...func(o *Options)) *StandupMesh {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Registry = opts.Registry
		o.Scheduler = opts.Scheduler
		o.Generator = opts.Generator
		o.Notifier = opts.Notifier
		o.Tracker = opts.Tracker
		o.EscalationRecipients = opts.EscalationRecipients
		o.Logger = opts.Logger
	})

	return &StandupMesh{opts: opts, engine: e}
}

// ScheduleMeeting validates the spec, stores the meeting and arms its trigger.
func (m *StandupMesh) ScheduleMeeting(ctx context.Context, spec core.MeetingSpec) (*core.Meeting, error) {
	return m.engine.ScheduleMeeting(ctx, spec)
}

// StartMeeting starts a scheduled meeting immediately, ahead of its trigger.
func (m *StandupMesh) StartMeeting(ctx context.Context, meetingID string) (*core.MeetingSession, error) {
	return m.engine.StartMeeting(ctx, meetingID)
}

// JoinMeeting adds an invited participant to a live meeting and, when the
// virtual facilitator is enabled, returns their first standup question.
func (m *StandupMesh) JoinMeeting(ctx context.Context, meetingID, participant string) (*engine.JoinResult, error) {
	return m.engine.JoinMeeting(ctx, meetingID, participant)
}

// SubmitStandupResponse records the participant's answer to their current
// question. When the last participant finishes, the meeting finalizes
// automatically before the call returns.
func (m *StandupMesh) SubmitStandupResponse(ctx context.Context, meetingID, participant, answer string) (*engine.SubmitResult, error) {
	return m.engine.SubmitStandupResponse(ctx, meetingID, participant, answer)
}

// EndMeeting finalizes a live meeting manually, regardless of participant
// progress.
func (m *StandupMesh) EndMeeting(ctx context.Context, meetingID string) (*core.Meeting, error) {
	return m.engine.EndMeeting(ctx, meetingID)
}

// CancelMeeting cancels a scheduled or in-progress meeting and destroys its
// trigger.
func (m *StandupMesh) CancelMeeting(ctx context.Context, meetingID string) (*core.Meeting, error) {
	return m.engine.CancelMeeting(ctx, meetingID)
}

// GetMeeting returns the meeting by id.
func (m *StandupMesh) GetMeeting(ctx context.Context, meetingID string) (*core.Meeting, error) {
	return m.engine.GetMeeting(ctx, meetingID)
}

// ListMeetings returns all meetings the user participates in or created.
func (m *StandupMesh) ListMeetings(ctx context.Context, userID string) ([]*core.Meeting, error) {
	return m.engine.ListMeetings(ctx, userID)
}

// ListActiveSessions returns snapshots of all currently live meeting sessions.
func (m *StandupMesh) ListActiveSessions() []*core.MeetingSession {
	return m.engine.ListActiveSessions()
}
