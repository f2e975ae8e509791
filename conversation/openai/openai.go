// Package openai provides a ConversationGenerator backed by the OpenAI Chat
// Completions API. It produces acknowledgment, summary and analysis text via
// the model while keeping the question flow and blocker extraction
// deterministic, so a flaky model never corrupts orchestration inputs.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/standupmesh/conversation"
	"github.com/hupe1980/standupmesh/core"
	"github.com/openai/openai-go"
)

// escalateMarker is the token the model is instructed to emit when blockers
// warrant escalation.
const escalateMarker = "ESCALATE"

// Options configure the OpenAI generator adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Generator wraps the OpenAI Chat Completions API behind the generic
// core.ConversationGenerator interface.
type Generator struct {
	client *openai.Client
	opts   Options
}

// NewGenerator creates a new OpenAI generator using the official client.
func NewGenerator(optFns ...func(o *Options)) *Generator {
	client := openai.NewClient()
	return NewGeneratorFromClient(&client, optFns...)
}

// NewGeneratorFromClient creates a new OpenAI generator from an existing client.
func NewGeneratorFromClient(client *openai.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{client: client, opts: opts}
}

// StartSession implements core.ConversationGenerator. The question flow is
// fixed, so no model call is made here.
func (g *Generator) StartSession(_ context.Context, participantName string) (core.StandupScript, error) {
	questions, err := conversation.RenderQuestions(participantName)
	if err != nil {
		return core.StandupScript{}, err
	}
	return core.StandupScript{SessionID: core.NewID(), Questions: questions}, nil
}

// Acknowledge implements core.ConversationGenerator.
func (g *Generator) Acknowledge(ctx context.Context, priorAnswer string, questionIndex int) (string, error) {
	system := "You are a friendly standup facilitator. Reply with one short encouraging sentence acknowledging the participant's answer. Do not ask follow-up questions."
	user := fmt.Sprintf("The participant just answered standup question %d of %d with: %q", questionIndex+1, core.NumStandupQuestions, priorAnswer)
	return g.complete(ctx, system, user)
}

// Summarize implements core.ConversationGenerator. The narrative text comes
// from the model; the blocker list is extracted deterministically from the
// response table.
func (g *Generator) Summarize(ctx context.Context, data core.MeetingData) (core.Summary, error) {
	system := "You summarize team standup meetings. Write a concise narrative summary covering progress, plans and blockers."
	user := fmt.Sprintf("Meeting %q (%d minutes). Transcript:\n%s", data.Title, data.DurationMinutes, conversation.Transcript(data))
	text, err := g.complete(ctx, system, user)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summary{
		Participants: data.Participants,
		Text:         text,
		Blockers:     conversation.ExtractBlockers(data),
	}, nil
}

// AnalyzeBlockers implements core.ConversationGenerator. The model is asked
// to end its analysis with an explicit escalation marker which is parsed into
// the boolean recommendation.
func (g *Generator) AnalyzeBlockers(ctx context.Context, blockers []core.Blocker) (core.BlockerAnalysis, error) {
	if len(blockers) == 0 {
		return conversation.NoBlockersAnalysis(), nil
	}
	system := fmt.Sprintf("You analyze standup blockers. Categorize each blocker and recommend whether management escalation is required. End your reply with the single word %s if escalation is required, otherwise with OK.", escalateMarker)
	var sb strings.Builder
	for _, b := range blockers {
		fmt.Fprintf(&sb, "- %s: %s\n", b.Participant, b.Text)
	}
	text, err := g.complete(ctx, system, sb.String())
	if err != nil {
		return core.BlockerAnalysis{}, err
	}
	return core.BlockerAnalysis{
		Text:               text,
		RequiresEscalation: strings.Contains(strings.ToUpper(text), escalateMarker),
	}, nil
}

// complete performs a non-streaming chat completion and returns the text of
// the first choice.
func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:               g.opts.Model,
		Temperature:         openai.Float(g.opts.Temperature),
		MaxCompletionTokens: openai.Int(g.opts.MaxCompletionTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
