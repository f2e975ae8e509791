package standupmesh

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/standupmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandupMesh_EndToEnd(t *testing.T) {
	mesh := New(func(o *Options) {
		o.EscalationRecipients = []string{"manager"}
	})
	ctx := context.Background()

	meeting, err := mesh.ScheduleMeeting(ctx, core.MeetingSpec{
		Title:              "daily sync",
		Participants:       []string{"alice", "bob"},
		ScheduledAt:        time.Now().Add(time.Hour),
		Timezone:           "UTC",
		DurationMinutes:    15,
		VirtualFacilitator: true,
		CreatedBy:          "carol",
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusScheduled, meeting.Status)

	_, err = mesh.StartMeeting(ctx, meeting.ID)
	require.NoError(t, err)
	require.Len(t, mesh.ListActiveSessions(), 1)

	for _, p := range []string{"alice", "bob"} {
		join, err := mesh.JoinMeeting(ctx, meeting.ID, p)
		require.NoError(t, err)
		assert.NotEmpty(t, join.Question)

		for _, answer := range []string{"made progress", "more of the same", "none"} {
			_, err = mesh.SubmitStandupResponse(ctx, meeting.ID, p, answer)
			require.NoError(t, err)
		}
	}

	final, err := mesh.GetMeeting(ctx, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, final.Status)
	assert.Empty(t, mesh.ListActiveSessions())

	mine, err := mesh.ListMeetings(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestStandupMesh_CancelScheduled(t *testing.T) {
	mesh := New()
	ctx := context.Background()

	meeting, err := mesh.ScheduleMeeting(ctx, core.MeetingSpec{
		Title:        "one-on-one",
		Participants: []string{"alice"},
		ScheduledAt:  time.Now().Add(time.Hour),
		Timezone:     "UTC",
		CreatedBy:    "alice",
	})
	require.NoError(t, err)

	cancelled, err := mesh.CancelMeeting(ctx, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCancelled, cancelled.Status)

	_, err = mesh.CancelMeeting(ctx, meeting.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}
