// Package anthropic provides a ConversationGenerator backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/standupmesh/conversation"
	"github.com/hupe1980/standupmesh/core"
)

const escalateMarker = "ESCALATE"

// Options configure the Anthropic generator adapter (model id, temperature,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Generator wraps the Anthropic Messages API behind the generic
// core.ConversationGenerator interface.
type Generator struct {
	client *anthropic.Client
	opts   Options
}

// NewGenerator creates a new Anthropic generator using the official client.
func NewGenerator(optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Generator{client: &client, opts: opts}
}

// NewGeneratorFromClient creates a new Anthropic generator from an existing client.
func NewGeneratorFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
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

// AnalyzeBlockers implements core.ConversationGenerator.
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

// complete performs a non-streaming message request and concatenates the text
// blocks of the response.
func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       g.opts.Model,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: anthropic.Float(g.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			textBlock := block.AsText()
			sb.WriteString(textBlock.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text blocks returned")
	}
	return sb.String(), nil
}
