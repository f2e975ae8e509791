package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/standupmesh/conversation"
	"github.com/hupe1980/standupmesh/core"
)

// finalize closes out a meeting whose finalization has been claimed via
// MarkFinalized. Steps: status transition and data assembly are fatal;
// summary, analysis, notifications and task sync are best-effort; session
// teardown always runs once the fatal steps succeed.
func (e *Engine) finalize(ctx context.Context, id string, sess *core.MeetingSession) error {
	// Step 1: transition and stamp; compute the actual duration.
	m, err := e.registry.Transition(id, core.StatusCompleted)
	if err != nil {
		return fmt.Errorf("finalize meeting %s: %w", id, err)
	}
	minutes := int(m.EndedAt.Sub(sess.StartedAt) / time.Minute)
	if err := e.registry.SetDuration(id, minutes); err != nil {
		return fmt.Errorf("finalize meeting %s: %w", id, err)
	}

	// Step 2: assemble the meeting-data record.
	data := core.MeetingData{
		MeetingID:       id,
		Title:           m.Title,
		Participants:    sess.Participants,
		Responses:       sess.Responses(),
		StartedAt:       sess.StartedAt,
		DurationMinutes: minutes,
	}

	// Step 3: summary, degraded to the deterministic generator on failure.
	summary, err := e.generator.Summarize(ctx, data)
	if err != nil {
		e.collaboratorFailure(id, "summarize", err)
		summary, _ = e.fallback.Summarize(ctx, data)
	}

	// Step 4: blocker analysis; an empty blocker list skips the
	// collaborator call and uses the fixed no-blockers result.
	var analysis core.BlockerAnalysis
	if len(summary.Blockers) == 0 {
		analysis = conversation.NoBlockersAnalysis()
	} else {
		analysis, err = e.generator.AnalyzeBlockers(ctx, summary.Blockers)
		if err != nil {
			e.collaboratorFailure(id, "analyze-blockers", err)
			analysis, _ = e.fallback.AnalyzeBlockers(ctx, summary.Blockers)
		}
	}

	// Step 5: summary notification to all participants.
	if err := e.notifier.SendSummary(ctx, sess.Participants, summary, m.Title); err != nil {
		e.collaboratorFailure(id, "send-summary", err)
	}

	// Step 6: escalation alert when the analysis recommends it.
	if analysis.RequiresEscalation {
		alert := core.EscalationAlert{
			MeetingID:    id,
			MeetingTitle: m.Title,
			Analysis:     analysis.Text,
			Blockers:     summary.Blockers,
		}
		if err := e.notifier.SendEscalationAlert(ctx, e.escalationRecipients, alert); err != nil {
			e.collaboratorFailure(id, "send-escalation", err)
		}
	}

	// Step 7: task synchronization.
	if err := e.tracker.SyncFromMeeting(ctx, data, summary); err != nil {
		e.collaboratorFailure(id, "task-sync", err)
	}

	// Step 8: discard the session. The meeting record stays in the
	// registry as a permanent completed record.
	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()

	e.logger.Info("meeting finalized meeting_id=%s duration_min=%d blockers=%d escalated=%v",
		id, minutes, len(summary.Blockers), analysis.RequiresEscalation)
	return nil
}
