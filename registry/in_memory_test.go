package registry

import (
	"testing"
	"time"

	"github.com/hupe1980/standupmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
}

func newTestRegistry() *InMemoryRegistry {
	return NewInMemoryRegistry(func(o *Options) { o.Now = fixedNow })
}

func futureSpec() core.MeetingSpec {
	return core.MeetingSpec{
		Title:              "daily sync",
		Participants:       []string{"alice", "bob"},
		ScheduledAt:        fixedNow().Add(time.Hour),
		Timezone:           "UTC",
		DurationMinutes:    15,
		Recurrence:         core.RecurrenceNone,
		VirtualFacilitator: true,
		CreatedBy:          "carol",
	}
}

func TestInMemoryRegistry_CreateAndGet(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(futureSpec())
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, core.StatusScheduled, m.Status)
	assert.Equal(t, fixedNow(), m.CreatedAt)

	got, err := r.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	// Mutating the returned clone must not leak into the registry.
	got.Title = "mutated"
	again, err := r.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "daily sync", again.Title)
}

func TestInMemoryRegistry_GetUnknown(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestInMemoryRegistry_CreateRejectsPastSchedule(t *testing.T) {
	r := newTestRegistry()

	spec := futureSpec()
	spec.ScheduledAt = fixedNow().Add(-time.Minute)
	_, err := r.Create(spec)
	assert.ErrorIs(t, err, core.ErrPastSchedule)

	spec.ScheduledAt = fixedNow()
	_, err = r.Create(spec)
	assert.ErrorIs(t, err, core.ErrPastSchedule, "an instant equal to now is not strictly in the future")
}

func TestInMemoryRegistry_CreateAllowsPastInstantForRecurring(t *testing.T) {
	r := newTestRegistry()
	spec := futureSpec()
	spec.Recurrence = core.RecurrenceDaily
	spec.ScheduledAt = fixedNow().Add(-24 * time.Hour)
	_, err := r.Create(spec)
	assert.NoError(t, err, "recurring meetings derive a cadence, not a single instant")
}

func TestInMemoryRegistry_CreateRejectsInvalidSpecs(t *testing.T) {
	r := newTestRegistry()

	spec := futureSpec()
	spec.Participants = nil
	_, err := r.Create(spec)
	assert.ErrorIs(t, err, core.ErrInvalidSpec)

	spec = futureSpec()
	spec.Recurrence = core.RecurrenceWeekly
	_, err = r.Create(spec)
	assert.ErrorIs(t, err, core.ErrInvalidSpec)

	spec = futureSpec()
	spec.Timezone = "Mars/Olympus_Mons"
	_, err = r.Create(spec)
	assert.ErrorIs(t, err, core.ErrInvalidSpec)
}

func TestInMemoryRegistry_List(t *testing.T) {
	r := newTestRegistry()
	first, err := r.Create(futureSpec())
	require.NoError(t, err)

	spec := futureSpec()
	spec.Participants = []string{"dave"}
	spec.CreatedBy = "alice"
	second, err := r.Create(spec)
	require.NoError(t, err)

	got, err := r.List("alice")
	require.NoError(t, err)
	require.Len(t, got, 2, "alice participates in the first and created the second")
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	none, err := r.List("mallory")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryRegistry_TransitionStateMachine(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(futureSpec())
	require.NoError(t, err)

	_, err = r.Transition(m.ID, core.StatusCompleted)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	started, err := r.Transition(m.ID, core.StatusInProgress)
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)

	done, err := r.Transition(m.ID, core.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.EndedAt)

	_, err = r.Transition(m.ID, core.StatusCancelled)
	assert.ErrorIs(t, err, core.ErrInvalidTransition, "no transition leaves completed")
}

func TestInMemoryRegistry_SetDuration(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(futureSpec())
	require.NoError(t, err)

	require.NoError(t, r.SetDuration(m.ID, 42))
	got, err := r.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.DurationMinutes)

	assert.ErrorIs(t, r.SetDuration("nope", 1), core.ErrNotFound)
}
