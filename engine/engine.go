package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/standupmesh/conversation"
	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/logging"
	"github.com/hupe1980/standupmesh/notify"
	"github.com/hupe1980/standupmesh/registry"
	"github.com/hupe1980/standupmesh/scheduler"
	"github.com/hupe1980/standupmesh/tasktrack"
)

// noBlockersAck is the fixed acknowledgment used when the blocker answer is
// negative; the conversation collaborator is not invoked in that case.
const noBlockersAck = "Great, no blockers then."

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Registry owns meeting entities. Defaults to the in-memory registry.
	Registry core.MeetingRegistry
	// Scheduler arms meeting triggers. Defaults to the timer scheduler.
	Scheduler core.Scheduler
	// Generator produces questions, acknowledgments, summaries and
	// analyses. Defaults to the deterministic Static generator.
	Generator core.ConversationGenerator
	// Notifier delivers meeting messages. Defaults to the log notifier.
	Notifier core.Notifier
	// Tracker syncs work items from finalized meetings. Defaults to the
	// in-memory tracker.
	Tracker core.TaskTracker
	// Logger receives lifecycle and collaborator-failure logs.
	Logger logging.Logger
	// EscalationRecipients receive alerts when blocker analysis recommends
	// escalation.
	EscalationRecipients []string
	// Now supplies wall-clock time for answer timestamps. Defaults to
	// time.Now.
	Now func() time.Time
}

// Engine coordinates the meeting lifecycle: trigger firing, session
// management, the per-participant standup flow, completion detection and
// finalization. Public methods are safe for concurrent use.
type Engine struct {
	registry             core.MeetingRegistry
	scheduler            core.Scheduler
	generator            core.ConversationGenerator
	fallback             *conversation.Static
	notifier             core.Notifier
	tracker              core.TaskTracker
	logger               logging.Logger
	escalationRecipients []string
	now                  func() time.Time

	mu       sync.Mutex
	sessions map[string]*core.MeetingSession
	handles  map[string]core.TriggerHandle
	locks    map[string]*sync.Mutex
}

// New constructs an Engine with optional overrides.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Now:    time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = registry.NewInMemoryRegistry()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.New(func(o *scheduler.Options) { o.Logger = opts.Logger })
	}
	if opts.Generator == nil {
		opts.Generator = conversation.NewStatic()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewLogNotifier(func(o *notify.Options) { o.Logger = opts.Logger })
	}
	if opts.Tracker == nil {
		opts.Tracker = tasktrack.NewInMemoryTracker(func(o *tasktrack.Options) { o.Logger = opts.Logger })
	}

	return &Engine{
		registry:             opts.Registry,
		scheduler:            opts.Scheduler,
		generator:            opts.Generator,
		fallback:             conversation.NewStatic(),
		notifier:             opts.Notifier,
		tracker:              opts.Tracker,
		logger:               opts.Logger,
		escalationRecipients: opts.EscalationRecipients,
		now:                  opts.Now,
		sessions:             make(map[string]*core.MeetingSession),
		handles:              make(map[string]core.TriggerHandle),
		locks:                make(map[string]*sync.Mutex),
	}
}

// JoinResult is returned by JoinMeeting.
type JoinResult struct {
	MeetingID    string `json:"meetingId"`
	Participant  string `json:"participant"`
	Welcome      string `json:"welcome"`
	SubSessionID string `json:"subSessionId,omitempty"`
	Question     string `json:"question,omitempty"`
}

// SubmitResult is returned by SubmitStandupResponse.
type SubmitResult struct {
	Acknowledgment   string `json:"acknowledgment"`
	NextQuestion     string `json:"nextQuestion,omitempty"`
	Complete         bool   `json:"complete"`
	MeetingCompleted bool   `json:"meetingCompleted"`
}

// ScheduleMeeting creates the meeting in the registry and arms its trigger.
func (e *Engine) ScheduleMeeting(_ context.Context, spec core.MeetingSpec) (*core.Meeting, error) {
	m, err := e.registry.Create(spec)
	if err != nil {
		return nil, err
	}
	handle, err := e.scheduler.Schedule(m, e.onTrigger)
	if err != nil {
		// The meeting exists but cannot be triggered; cancel it rather
		// than leaving an orphaned scheduled record.
		if _, terr := e.registry.Transition(m.ID, core.StatusCancelled); terr != nil {
			e.logger.Warn("failed to cancel unschedulable meeting meeting_id=%s: %v", m.ID, terr)
		}
		return nil, err
	}
	e.mu.Lock()
	e.handles[m.ID] = handle
	e.mu.Unlock()

	e.logger.Info("meeting scheduled meeting_id=%s title=%q recurrence=%s", m.ID, m.Title, m.Recurrence)
	return m, nil
}

// onTrigger is the scheduler callback. It runs outside any request path and
// re-validates meeting status before acting, to handle the race between a
// fired timer and a concurrent cancellation (and re-fires of recurring
// triggers for meetings that already ran).
func (e *Engine) onTrigger(meetingID string) {
	m, err := e.registry.Get(meetingID)
	if err != nil {
		e.logger.Warn("trigger fired for unknown meeting meeting_id=%s: %v", meetingID, err)
		return
	}
	if m.Status != core.StatusScheduled {
		e.logger.Debug("trigger no-op, meeting not scheduled meeting_id=%s status=%s", meetingID, m.Status)
		return
	}
	if _, err := e.StartMeeting(context.Background(), meetingID); err != nil {
		e.logger.Warn("trigger failed to start meeting meeting_id=%s: %v", meetingID, err)
	}
}

// StartMeeting transitions the meeting to in-progress and creates its live
// session with an empty response table sized to the participant list.
func (e *Engine) StartMeeting(ctx context.Context, id string) (*core.MeetingSession, error) {
	l := e.meetingLock(id)
	l.Lock()

	m, err := e.registry.Get(id)
	if err != nil {
		l.Unlock()
		return nil, err
	}
	if m.Status != core.StatusScheduled {
		l.Unlock()
		return nil, fmt.Errorf("meeting %s is %s: %w", id, m.Status, core.ErrInvalidTransition)
	}

	m, err = e.registry.Transition(id, core.StatusInProgress)
	if err != nil {
		l.Unlock()
		return nil, err
	}

	sess := core.NewMeetingSession(id, m.Participants, *m.StartedAt)

	e.mu.Lock()
	e.sessions[id] = sess
	var retired core.TriggerHandle
	if m.Recurrence == core.RecurrenceNone {
		// A manual start may precede the timer; retire the pending
		// one-time handle either way.
		retired = e.handles[id]
		delete(e.handles, id)
	}
	e.mu.Unlock()
	l.Unlock()

	if retired != nil {
		e.scheduler.Cancel(retired)
	}

	e.logger.Info("meeting started meeting_id=%s participants=%d", id, len(sess.Participants))

	// Best-effort start notification; delivery failures never propagate.
	note := core.Notification{
		MeetingID: id,
		Title:     "Meeting started",
		Body:      fmt.Sprintf("%q is starting now.", m.Title),
	}
	if err := e.notifier.SendNotification(ctx, sess.Participants, note); err != nil {
		e.collaboratorFailure(id, "start-notification", err)
	}

	return sess, nil
}

// JoinMeeting adds a participant to a live meeting. With the virtual
// facilitator flag set it creates (or, on re-join, reuses) the participant's
// standup sub-session and returns the first unanswered question; otherwise it
// returns a plain welcome with no question flow.
func (e *Engine) JoinMeeting(ctx context.Context, id, participant string) (*JoinResult, error) {
	l := e.meetingLock(id)
	l.Lock()

	sess := e.session(id)
	if sess == nil {
		l.Unlock()
		return nil, fmt.Errorf("no active session for meeting %s: %w", id, core.ErrNotFound)
	}
	m, err := e.registry.Get(id)
	if err != nil {
		l.Unlock()
		return nil, err
	}
	if !m.HasParticipant(participant) {
		l.Unlock()
		return nil, fmt.Errorf("%s is not invited to meeting %s: %w", participant, id, core.ErrNotInvited)
	}

	welcome := fmt.Sprintf("Welcome to %q, %s!", m.Title, participant)

	if !m.VirtualFacilitator {
		l.Unlock()
		return &JoinResult{MeetingID: id, Participant: participant, Welcome: welcome}, nil
	}

	if sub, ok := sess.SubSession(participant); ok {
		// Re-join keeps existing progress.
		question, _ := sub.NextQuestion()
		l.Unlock()
		return &JoinResult{
			MeetingID:    id,
			Participant:  participant,
			Welcome:      welcome,
			SubSessionID: sub.ID,
			Question:     question,
		}, nil
	}
	l.Unlock()

	// Collaborator call outside the lock.
	script, err := e.generator.StartSession(ctx, participant)
	if err != nil {
		e.collaboratorFailure(id, "start-session", err)
		if script, err = e.fallback.StartSession(ctx, participant); err != nil {
			return nil, err
		}
	}
	sub := core.NewStandupSubSession(script.SessionID, participant, script.Questions)

	l.Lock()
	sess = e.session(id)
	if sess == nil {
		l.Unlock()
		return nil, fmt.Errorf("no active session for meeting %s: %w", id, core.ErrNotFound)
	}
	sub = sess.AttachSubSession(sub)
	question, _ := sub.NextQuestion()
	l.Unlock()

	return &JoinResult{
		MeetingID:    id,
		Participant:  participant,
		Welcome:      welcome,
		SubSessionID: sub.ID,
		Question:     question,
	}, nil
}

// SubmitStandupResponse records the participant's answer to their current
// question, produces an acknowledgment, and on sub-session completion writes
// the collected answers into the session's response table and runs the
// completion detector.
func (e *Engine) SubmitStandupResponse(ctx context.Context, id, participant, answer string) (*SubmitResult, error) {
	l := e.meetingLock(id)
	l.Lock()

	sess := e.session(id)
	if sess == nil {
		l.Unlock()
		return nil, fmt.Errorf("no active session for meeting %s: %w", id, core.ErrNotFound)
	}
	sub, ok := sess.SubSession(participant)
	if !ok {
		l.Unlock()
		return nil, fmt.Errorf("no standup sub-session for %s in meeting %s: %w", participant, id, core.ErrNotFound)
	}

	_, answered, err := sub.Submit(answer, e.now())
	if err != nil {
		l.Unlock()
		return nil, err
	}
	complete := sub.IsComplete()
	var next string
	if complete {
		sess.RecordCompletion(participant, sub.Answers())
	} else {
		next, _ = sub.NextQuestion()
	}
	l.Unlock()

	// Acknowledgment outside the lock; a negative blocker answer skips the
	// collaborator call entirely.
	var ack string
	if answered == core.NumStandupQuestions-1 && core.IsNegativeAnswer(answer) {
		ack = noBlockersAck
	} else {
		ack, err = e.generator.Acknowledge(ctx, answer, answered)
		if err != nil {
			e.collaboratorFailure(id, "acknowledge", err)
			ack, _ = e.fallback.Acknowledge(ctx, answer, answered)
		}
	}

	meetingCompleted := false
	if complete {
		// Completion detector: compare and trigger finalization at most
		// once, atomically with respect to concurrent submissions.
		l.Lock()
		if live := e.session(id); live != nil && live.AllComplete() && live.MarkFinalized() {
			meetingCompleted = true
		}
		l.Unlock()
		if meetingCompleted {
			if err := e.finalize(ctx, id, sess); err != nil {
				e.logger.Error("automatic finalization failed meeting_id=%s: %v", id, err)
			}
		}
	}

	return &SubmitResult{
		Acknowledgment:   ack,
		NextQuestion:     next,
		Complete:         complete,
		MeetingCompleted: meetingCompleted,
	}, nil
}

// EndMeeting finalizes a live meeting manually.
func (e *Engine) EndMeeting(ctx context.Context, id string) (*core.Meeting, error) {
	l := e.meetingLock(id)
	l.Lock()
	sess := e.session(id)
	if sess == nil {
		l.Unlock()
		return nil, fmt.Errorf("no active session for meeting %s: %w", id, core.ErrNotFound)
	}
	if _, err := e.registry.Get(id); err != nil {
		l.Unlock()
		return nil, err
	}
	claimed := sess.MarkFinalized()
	l.Unlock()

	if !claimed {
		return nil, fmt.Errorf("meeting %s is already finalizing: %w", id, core.ErrInvalidTransition)
	}
	if err := e.finalize(ctx, id, sess); err != nil {
		return nil, err
	}
	return e.registry.Get(id)
}

// CancelMeeting cancels a scheduled or in-progress meeting. The trigger
// handle is destroyed synchronously; a live session is intentionally left in
// place (participants may still be mid-flow) — only status changes and future
// automatic triggering stops.
func (e *Engine) CancelMeeting(ctx context.Context, id string) (*core.Meeting, error) {
	l := e.meetingLock(id)
	l.Lock()

	m, err := e.registry.Get(id)
	if err != nil {
		l.Unlock()
		return nil, err
	}
	wasInProgress := m.Status == core.StatusInProgress

	m, err = e.registry.Transition(id, core.StatusCancelled)
	if err != nil {
		l.Unlock()
		return nil, err
	}

	e.mu.Lock()
	handle := e.handles[id]
	delete(e.handles, id)
	e.mu.Unlock()
	if handle != nil {
		e.scheduler.Cancel(handle)
	}
	l.Unlock()

	e.logger.Info("meeting cancelled meeting_id=%s was_in_progress=%v", id, wasInProgress)

	if wasInProgress {
		note := core.Notification{
			MeetingID: id,
			Title:     "Meeting cancelled",
			Body:      fmt.Sprintf("%q was cancelled.", m.Title),
		}
		if err := e.notifier.SendNotification(ctx, m.Participants, note); err != nil {
			e.collaboratorFailure(id, "cancel-notification", err)
		}
	}

	return m, nil
}

// GetMeeting returns the meeting by id.
func (e *Engine) GetMeeting(_ context.Context, id string) (*core.Meeting, error) {
	return e.registry.Get(id)
}

// ListMeetings returns meetings where userID participates or is the creator.
func (e *Engine) ListMeetings(_ context.Context, userID string) ([]*core.Meeting, error) {
	return e.registry.List(userID)
}

// ListActiveSessions returns clones of all live meeting sessions.
func (e *Engine) ListActiveSessions() []*core.MeetingSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]*core.MeetingSession, 0, len(e.sessions))
	for _, sess := range e.sessions {
		res = append(res, sess.Clone())
	}
	return res
}

// session returns the live session for id; caller must hold the meeting lock
// for read-then-write sequences.
func (e *Engine) session(id string) *core.MeetingSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[id]
}

// meetingLock returns the per-meeting mutex, creating it on first use.
// Operations on different meeting ids proceed fully independently.
func (e *Engine) meetingLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}

// collaboratorFailure logs a downstream failure with the meeting id and step
// name. Collaborator failures never propagate as core errors.
func (e *Engine) collaboratorFailure(meetingID, step string, err error) {
	cerr := &core.CollaboratorError{MeetingID: meetingID, Step: step, Err: err}
	e.logger.Error("%v", cerr)
}
