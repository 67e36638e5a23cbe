package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/draftdeck/draftdeck/app/database"
	"github.com/draftdeck/draftdeck/app/llm"
)

const researchSummaryLimit = 500

// ResearchEngine turns a topic into structured research via the generation
// collaborator. Research is best-effort: a malformed response degrades to a
// synthesized result instead of failing, so research never blocks the rest of
// the pipeline. Transport failures still surface as errors.
type ResearchEngine struct {
	provider llm.Provider
}

func NewResearchEngine(provider llm.Provider) *ResearchEngine {
	return &ResearchEngine{provider: provider}
}

func (e *ResearchEngine) Research(ctx context.Context, topic string, extraContext string) (*database.Research, error) {
	prompt := buildResearchPrompt(topic, extraContext)

	raw, err := e.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("research generation failed: %w", err)
	}

	cleaned := StripCodeFences(raw)

	var research database.Research
	if err := json.Unmarshal([]byte(cleaned), &research); err != nil {
		slog.Warn("Research response was not valid JSON, degrading to raw text", "topic", topic, "error", err)
		return degradeResearch(raw), nil
	}

	return &research, nil
}

func buildResearchPrompt(topic string, extraContext string) string {
	var sb strings.Builder
	sb.WriteString("You are a content research assistant. Research the topic below and respond with JSON only, no prose, exactly matching this shape:\n")
	sb.WriteString(`{"summary": "...", "keyPoints": ["..."], "angles": ["..."], "sources": ["..."]}` + "\n\n")
	sb.WriteString("Topic: " + topic + "\n")
	if extraContext != "" {
		sb.WriteString("Additional context:\n" + extraContext + "\n")
	}
	return sb.String()
}

func degradeResearch(raw string) *database.Research {
	summary := raw
	if runes := []rune(summary); len(runes) > researchSummaryLimit {
		summary = string(runes[:researchSummaryLimit])
	}

	return &database.Research{
		Summary:   summary,
		KeyPoints: []string{raw},
		Angles:    []string{"General overview"},
		Sources:   []string{},
	}
}

// StripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, from a model response.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json").
		first := strings.TrimSpace(trimmed[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
