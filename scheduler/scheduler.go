package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/logging"
)

// Options holds dependency overrides passed to New().
type Options struct {
	// Clock supplies time and timers. Defaults to the system clock.
	Clock core.Clock
	// Logger receives trigger lifecycle events. Defaults to NoOp.
	Logger logging.Logger
}

// TimerScheduler arms one-shot and weekday-recurring triggers for meetings.
// Public methods are safe for concurrent use.
type TimerScheduler struct {
	clock  core.Clock
	logger logging.Logger
}

// New constructs a TimerScheduler with optional overrides.
func New(optFns ...func(o *Options)) *TimerScheduler {
	opts := Options{
		Clock:  SystemClock(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &TimerScheduler{clock: opts.Clock, logger: opts.Logger}
}

// Schedule arms a trigger for the meeting and returns its handle.
//
// One-time triggers re-validate the scheduled instant defensively even though
// the registry's create-time check should already have rejected past
// instants: a stale instant fails with ErrPastSchedule rather than firing
// immediately. Recurring (daily) triggers derive minute/hour from the
// scheduled instant localized to the meeting's timezone and fire every
// weekday until cancelled.
func (s *TimerScheduler) Schedule(m *core.Meeting, fire func(meetingID string)) (core.TriggerHandle, error) {
	switch m.Recurrence {
	case core.RecurrenceNone, "":
		return s.scheduleOnce(m, fire)
	case core.RecurrenceDaily:
		return s.scheduleWeekdays(m, fire)
	default:
		return nil, fmt.Errorf("recurrence %q has no specified cadence: %w", m.Recurrence, core.ErrInvalidSpec)
	}
}

// Cancel stops the trigger behind the handle. It is safe to call while a
// firing is in flight; the fired callback re-validates meeting status.
func (s *TimerScheduler) Cancel(h core.TriggerHandle) {
	tr, ok := h.(*trigger)
	if !ok || tr == nil {
		return
	}
	tr.cancel()
	s.logger.Debug("trigger cancelled meeting_id=%s", tr.MeetingID())
}

func (s *TimerScheduler) scheduleOnce(m *core.Meeting, fire func(meetingID string)) (core.TriggerHandle, error) {
	delay := m.ScheduledAt.Sub(s.clock.Now())
	if delay <= 0 {
		return nil, fmt.Errorf("meeting %s scheduled at %s: %w", m.ID, m.ScheduledAt, core.ErrPastSchedule)
	}
	tr := &trigger{meetingID: m.ID}
	tr.arm(s.clock.AfterFunc(delay, func() {
		if !tr.claimFiring() {
			return
		}
		s.logger.Debug("one-time trigger fired meeting_id=%s", tr.meetingID)
		fire(tr.meetingID)
	}))
	s.logger.Debug("one-time trigger armed meeting_id=%s delay=%s", m.ID, delay)
	return tr, nil
}

func (s *TimerScheduler) scheduleWeekdays(m *core.Meeting, fire func(meetingID string)) (core.TriggerHandle, error) {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", m.Timezone, core.ErrInvalidSpec)
	}
	hour, minute, _ := m.ScheduledAt.In(loc).Clock()
	tr := &trigger{meetingID: m.ID, recurring: true}
	s.armNextWeekday(tr, loc, hour, minute, fire)
	s.logger.Debug("recurring trigger armed meeting_id=%s cadence=weekdays %02d:%02d %s", m.ID, hour, minute, loc)
	return tr, nil
}

func (s *TimerScheduler) armNextWeekday(tr *trigger, loc *time.Location, hour, minute int, fire func(meetingID string)) {
	next := nextWeekdayInstant(s.clock.Now(), loc, hour, minute)
	armed := tr.arm(s.clock.AfterFunc(next.Sub(s.clock.Now()), func() {
		if !tr.claimFiring() {
			return
		}
		s.logger.Debug("recurring trigger fired meeting_id=%s", tr.meetingID)
		fire(tr.meetingID)
		// Recurring handles persist across firings; rearm for the next weekday.
		s.armNextWeekday(tr, loc, hour, minute, fire)
	}))
	if !armed {
		s.logger.Debug("recurring trigger not rearmed after cancel meeting_id=%s", tr.meetingID)
	}
}

// nextWeekdayInstant computes the next Monday–Friday occurrence of
// hour:minute in loc strictly after now.
func nextWeekdayInstant(now time.Time, loc *time.Location, hour, minute int) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	for !next.After(local) || isWeekend(next.Weekday()) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// trigger is the concrete core.TriggerHandle: a meeting id bound to the
// currently armed timer. For one-time triggers the handle retires on firing;
// recurring triggers swap in a fresh timer after every firing.
type trigger struct {
	meetingID string
	recurring bool

	mu        sync.Mutex
	timer     core.Timer
	cancelled bool
}

// MeetingID implements core.TriggerHandle.
func (t *trigger) MeetingID() string { return t.meetingID }

// arm installs the pending timer unless the trigger was already cancelled, in
// which case the timer is stopped immediately.
func (t *trigger) arm(timer core.Timer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		timer.Stop()
		return false
	}
	t.timer = timer
	return true
}

// claimFiring reports whether a due timer may proceed. A trigger cancelled
// between timer expiry and callback execution loses the claim.
func (t *trigger) claimFiring() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return false
	}
	if !t.recurring {
		// One-time handles retire on firing.
		t.cancelled = true
		t.timer = nil
	}
	return true
}

func (t *trigger) cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
