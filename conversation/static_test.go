package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/standupmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(blockerAnswer string) core.MeetingData {
	now := time.Now()
	answers := []core.Answer{
		{Question: "q0", Text: "shipped the parser", Timestamp: now},
		{Question: "q1", Text: "reviews", Timestamp: now},
		{Question: "q2", Text: blockerAnswer, Timestamp: now},
	}
	return core.MeetingData{
		MeetingID:       core.NewID(),
		Title:           "daily sync",
		Participants:    []string{"alice"},
		Responses:       [][]core.Answer{answers},
		StartedAt:       now,
		DurationMinutes: 12,
	}
}

func TestStatic_StartSessionRendersName(t *testing.T) {
	g := NewStatic()
	script, err := g.StartSession(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, script.SessionID)
	for _, q := range script.Questions {
		assert.Contains(t, q, "alice")
	}
}

func TestStatic_AcknowledgePerQuestion(t *testing.T) {
	g := NewStatic()
	ctx := context.Background()

	for i := 0; i < core.NumStandupQuestions; i++ {
		ack, err := g.Acknowledge(ctx, "worked on things", i)
		require.NoError(t, err)
		assert.NotEmpty(t, ack)
	}

	ack, err := g.Acknowledge(ctx, "none", core.NumStandupQuestions-1)
	require.NoError(t, err)
	assert.Equal(t, "Great, no blockers then.", ack)

	_, err = g.Acknowledge(ctx, "x", core.NumStandupQuestions)
	assert.Error(t, err)
}

func TestStatic_SummarizeExtractsBlockers(t *testing.T) {
	g := NewStatic()
	summary, err := g.Summarize(context.Background(), sampleData("I am blocked by a failing build, urgent"))
	require.NoError(t, err)
	require.Len(t, summary.Blockers, 1)
	assert.Equal(t, "alice", summary.Blockers[0].Participant)
	assert.Contains(t, summary.Text, "daily sync")
}

func TestStatic_SummarizeSkipsNegativeBlockerAnswers(t *testing.T) {
	g := NewStatic()
	summary, err := g.Summarize(context.Background(), sampleData("none"))
	require.NoError(t, err)
	assert.Empty(t, summary.Blockers)
	assert.Contains(t, summary.Text, "No blockers were reported.")
}

func TestStatic_AnalyzeBlockersEscalation(t *testing.T) {
	g := NewStatic()
	ctx := context.Background()

	analysis, err := g.AnalyzeBlockers(ctx, nil)
	require.NoError(t, err)
	assert.False(t, analysis.RequiresEscalation)

	mild := []core.Blocker{{Participant: "alice", Text: "waiting on a code review"}}
	analysis, err = g.AnalyzeBlockers(ctx, mild)
	require.NoError(t, err)
	assert.False(t, analysis.RequiresEscalation)
	assert.Contains(t, analysis.Text, "dependency")

	hot := []core.Blocker{{Participant: "alice", Text: "I am blocked by a failing build, urgent"}}
	analysis, err = g.AnalyzeBlockers(ctx, hot)
	require.NoError(t, err)
	assert.True(t, analysis.RequiresEscalation)
}

func TestExtractBlockers_IncompleteSlotsIgnored(t *testing.T) {
	data := sampleData("stuck on infra")
	data.Participants = append(data.Participants, "bob")
	data.Responses = append(data.Responses, nil)
	blockers := ExtractBlockers(data)
	require.Len(t, blockers, 1)
	assert.Equal(t, "alice", blockers[0].Participant)
}
