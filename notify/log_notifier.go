package notify

import (
	"context"
	"strings"

	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/logging"
)

// Options configures the log notifier.
type Options struct {
	// Logger receives the rendered dispatches. Defaults to a text slog logger.
	Logger logging.Logger
}

// LogNotifier writes every dispatch to the structured logger. Useful for
// local development and as the default when no delivery backend is wired.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier constructs a notifier writing to the configured logger.
func NewLogNotifier(optFns ...func(o *Options)) *LogNotifier {
	opts := Options{Logger: logging.NewSlogLogger(logging.LogLevelInfo, "text", false)}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &LogNotifier{logger: opts.Logger}
}

// SendSummary implements core.Notifier.
func (n *LogNotifier) SendSummary(_ context.Context, participants []string, summary core.Summary, title string) error {
	n.logger.Info("meeting summary dispatched title=%q recipients=%s blockers=%d",
		title, strings.Join(participants, ","), len(summary.Blockers))
	return nil
}

// SendEscalationAlert implements core.Notifier.
func (n *LogNotifier) SendEscalationAlert(_ context.Context, recipients []string, alert core.EscalationAlert) error {
	n.logger.Warn("escalation alert dispatched meeting_id=%s title=%q recipients=%s blockers=%d",
		alert.MeetingID, alert.MeetingTitle, strings.Join(recipients, ","), len(alert.Blockers))
	return nil
}

// SendNotification implements core.Notifier.
func (n *LogNotifier) SendNotification(_ context.Context, participants []string, note core.Notification) error {
	n.logger.Info("notification dispatched meeting_id=%s title=%q recipients=%s",
		note.MeetingID, note.Title, strings.Join(participants, ","))
	return nil
}
