package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/draftdeck/draftdeck/app/brand"
	"github.com/draftdeck/draftdeck/app/llm"
)

// ComplianceGate verifies content against the brand guidelines before
// publication. Unlike research there is no degrade path: a collaborator
// response that does not parse into a verdict is an error.
type ComplianceGate struct {
	provider   llm.Provider
	guidelines *brand.Loader
}

func NewComplianceGate(provider llm.Provider, guidelines *brand.Loader) *ComplianceGate {
	return &ComplianceGate{provider: provider, guidelines: guidelines}
}

func (g *ComplianceGate) Verify(ctx context.Context, content string, platform string) (*ComplianceReport, error) {
	guidelines, err := g.guidelines.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load brand guidelines: %w", err)
	}

	prompt := buildCompliancePrompt(guidelines, platform, content)

	raw, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("compliance generation failed: %w", err)
	}

	cleaned := StripCodeFences(raw)

	var report ComplianceReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, ErrNoVerdict
	}
	if report.Issues == nil {
		report.Issues = []string{}
	}

	return &report, nil
}

func buildCompliancePrompt(guidelines string, platform string, content string) string {
	var sb strings.Builder
	sb.WriteString("You are a brand compliance reviewer. Check the content below against the brand guidelines ")
	sb.WriteString("and the conventions of the target platform. Respond with JSON only, exactly matching:\n")
	sb.WriteString(`{"passed": true|false, "issues": ["..."], "score": 0-100}` + "\n\n")
	sb.WriteString("Brand guidelines:\n" + guidelines + "\n\n")
	sb.WriteString("Target platform: " + platform + "\n\n")
	sb.WriteString("Content to review:\n" + content + "\n")
	return sb.String()
}
