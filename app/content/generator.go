package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftdeck/draftdeck/app/database"
	"github.com/draftdeck/draftdeck/app/llm"
)

var formatInstructions = map[string]string{
	database.FormatXThread: "Write a Twitter/X thread of at most 5 tweets about the topic below. " +
		"Number each tweet like \"1/\", keep every tweet under 280 characters, " +
		"open with a hook and close with a takeaway.",
	database.FormatLinkedinPost: "Write a LinkedIn post of at most 3000 characters about the topic below. " +
		"Open with a strong first line, share two or three concrete insights, " +
		"and end with a question that invites comments. Use at most three hashtags.",
	database.FormatBlogArticle: "Write an 800-1200 word blog article in markdown about the topic below. " +
		"Start with a \"#\" title, use subheadings, and close with a practical summary.",
}

// FormatGenerator produces one content variant per call. The alternate
// provider is the second copywriting collaborator selectable per request.
type FormatGenerator struct {
	defaultProvider llm.Provider
	altProvider     llm.Provider
}

func NewFormatGenerator(defaultProvider llm.Provider, altProvider llm.Provider) *FormatGenerator {
	return &FormatGenerator{
		defaultProvider: defaultProvider,
		altProvider:     altProvider,
	}
}

func (g *FormatGenerator) GenerateFormat(ctx context.Context, format string, topic string,
	research *database.Research, guidelines string, useAlt bool) (string, error) {

	instructions, ok := formatInstructions[format]
	if !ok {
		return "", fmt.Errorf("unknown content format: %s", format)
	}

	provider := g.defaultProvider
	if useAlt {
		if g.altProvider == nil {
			return "", fmt.Errorf("alternate generator requested but not configured")
		}
		provider = g.altProvider
	}

	prompt := buildFormatPrompt(instructions, topic, research, guidelines)

	text, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("format generation failed for %s: %w", format, err)
	}

	return strings.TrimSpace(text), nil
}

func buildFormatPrompt(instructions string, topic string, research *database.Research, guidelines string) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\nTopic: " + topic + "\n")

	if research != nil {
		if research.Summary != "" {
			sb.WriteString("\nResearch summary:\n" + research.Summary + "\n")
		}
		if len(research.KeyPoints) > 0 {
			sb.WriteString("\nKey points:\n")
			for _, point := range research.KeyPoints {
				sb.WriteString("- " + point + "\n")
			}
		}
	}

	if guidelines != "" {
		sb.WriteString("\nBrand guidelines to follow:\n" + guidelines + "\n")
	}

	sb.WriteString("\nReturn only the content itself, no commentary.")

	return sb.String()
}
