// Package conversation houses implementations of core.ConversationGenerator:
// the collaborator that produces standup questions, acknowledgments, meeting
// summaries and blocker analyses.
//
// Static is the deterministic default: rendered question templates, fixed
// acknowledgments and keyword-driven analysis. It is also the degradation
// target: the engine substitutes Static output whenever a richer generator
// fails. LLM-backed generators live in the openai and anthropic sub-packages.
package conversation
