package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mondayMorning is Monday 2024-03-04 08:00 UTC.
var mondayMorning = time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

type fireCounter struct {
	mu    sync.Mutex
	calls []string
}

func (f *fireCounter) fire(meetingID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, meetingID)
}

func (f *fireCounter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestScheduler(start time.Time) (*TimerScheduler, *testutil.FakeClock) {
	clock := testutil.NewFakeClock(start)
	s := New(func(o *Options) { o.Clock = clock })
	return s, clock
}

func oneTimeMeeting(at time.Time) *core.Meeting {
	return &core.Meeting{
		ID:          core.NewID(),
		Title:       "one-off",
		ScheduledAt: at,
		Timezone:    "UTC",
		Recurrence:  core.RecurrenceNone,
		Status:      core.StatusScheduled,
	}
}

func TestTimerScheduler_OneTimeFiresOnce(t *testing.T) {
	s, clock := newTestScheduler(mondayMorning)
	var fc fireCounter

	m := oneTimeMeeting(mondayMorning.Add(90 * time.Minute))
	h, err := s.Schedule(m, fc.fire)
	require.NoError(t, err)
	assert.Equal(t, m.ID, h.MeetingID())

	clock.Advance(time.Hour)
	assert.Equal(t, 0, fc.count(), "should not fire before the scheduled instant")

	clock.Advance(time.Hour)
	assert.Equal(t, 1, fc.count())

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 1, fc.count(), "one-time trigger must not refire")
}

func TestTimerScheduler_OneTimeRejectsPastInstant(t *testing.T) {
	s, _ := newTestScheduler(mondayMorning)

	_, err := s.Schedule(oneTimeMeeting(mondayMorning.Add(-time.Minute)), func(string) {})
	assert.ErrorIs(t, err, core.ErrPastSchedule)

	_, err = s.Schedule(oneTimeMeeting(mondayMorning), func(string) {})
	assert.ErrorIs(t, err, core.ErrPastSchedule)
}

func TestTimerScheduler_CancelBeforeFire(t *testing.T) {
	s, clock := newTestScheduler(mondayMorning)
	var fc fireCounter

	h, err := s.Schedule(oneTimeMeeting(mondayMorning.Add(time.Hour)), fc.fire)
	require.NoError(t, err)

	// Cancel a hair before the scheduled instant.
	clock.Advance(time.Hour - time.Microsecond)
	s.Cancel(h)
	clock.Advance(time.Minute)

	assert.Equal(t, 0, fc.count(), "cancelled trigger must never fire")
}

func TestTimerScheduler_WeekdayRecurrence(t *testing.T) {
	// Friday 2024-03-08 08:00 UTC.
	friday := time.Date(2024, time.March, 8, 8, 0, 0, 0, time.UTC)
	s, clock := newTestScheduler(friday)
	var fc fireCounter

	m := oneTimeMeeting(time.Date(2024, time.March, 8, 9, 30, 0, 0, time.UTC))
	m.Recurrence = core.RecurrenceDaily
	_, err := s.Schedule(m, fc.fire)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour) // Friday 10:00
	assert.Equal(t, 1, fc.count(), "fires Friday 09:30")

	clock.Advance(46 * time.Hour) // Sunday 08:00
	assert.Equal(t, 1, fc.count(), "weekend days are skipped")

	clock.Advance(26 * time.Hour) // Monday 10:00
	assert.Equal(t, 2, fc.count(), "fires again Monday 09:30")

	clock.Advance(24 * time.Hour) // Tuesday 10:00
	assert.Equal(t, 3, fc.count())
}

func TestTimerScheduler_RecurringCancelStopsRefiring(t *testing.T) {
	s, clock := newTestScheduler(mondayMorning)
	var fc fireCounter

	m := oneTimeMeeting(mondayMorning.Add(time.Hour))
	m.Recurrence = core.RecurrenceDaily
	h, err := s.Schedule(m, fc.fire)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	require.Equal(t, 1, fc.count())

	s.Cancel(h)
	clock.Advance(7 * 24 * time.Hour)
	assert.Equal(t, 1, fc.count(), "cancelled recurring trigger must not refire")
}

func TestTimerScheduler_RecurrenceInMeetingTimezone(t *testing.T) {
	// 14:30 UTC is 09:30 in New York (EST, early March).
	s, clock := newTestScheduler(mondayMorning)
	var fc fireCounter

	m := oneTimeMeeting(time.Date(2024, time.March, 4, 14, 30, 0, 0, time.UTC))
	m.Timezone = "America/New_York"
	m.Recurrence = core.RecurrenceDaily
	_, err := s.Schedule(m, fc.fire)
	require.NoError(t, err)

	clock.Advance(6 * time.Hour) // Monday 14:00 UTC
	assert.Equal(t, 0, fc.count())

	clock.Advance(time.Hour) // Monday 15:00 UTC
	assert.Equal(t, 1, fc.count(), "fires at 09:30 America/New_York")
}

func TestTimerScheduler_WeeklyRecurrenceUnsupported(t *testing.T) {
	s, _ := newTestScheduler(mondayMorning)
	m := oneTimeMeeting(mondayMorning.Add(time.Hour))
	m.Recurrence = core.RecurrenceWeekly
	_, err := s.Schedule(m, func(string) {})
	assert.ErrorIs(t, err, core.ErrInvalidSpec)
}

func TestTimerScheduler_UnknownTimezone(t *testing.T) {
	s, _ := newTestScheduler(mondayMorning)
	m := oneTimeMeeting(mondayMorning.Add(time.Hour))
	m.Recurrence = core.RecurrenceDaily
	m.Timezone = "Mars/Olympus_Mons"
	_, err := s.Schedule(m, func(string) {})
	assert.ErrorIs(t, err, core.ErrInvalidSpec)
}
