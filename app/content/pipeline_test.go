package content

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/draftdeck/draftdeck/app/brand"
	"github.com/draftdeck/draftdeck/app/database"
)

// memoryDraftRepo is a minimal in-memory DraftRepository for pipeline tests.
type memoryDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]*database.Draft
}

var _ database.DraftRepository = (*memoryDraftRepo)(nil)

func newMemoryDraftRepo() *memoryDraftRepo {
	return &memoryDraftRepo{drafts: make(map[string]*database.Draft)}
}

func (r *memoryDraftRepo) Create(topic string, research database.Research, formats database.Formats) (*database.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	draft := &database.Draft{
		ID:        uuid.NewString(),
		Topic:     topic,
		Research:  research,
		Formats:   formats,
		Status:    database.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.drafts[draft.ID] = draft

	return draft, nil
}

func (r *memoryDraftRepo) Get(id string) (*database.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drafts[id], nil
}

func (r *memoryDraftRepo) List(string) ([]database.Draft, error) { return nil, nil }
func (r *memoryDraftRepo) Approve(string) (*database.Draft, error) {
	return nil, nil
}
func (r *memoryDraftRepo) Reject(string, string) (*database.Draft, error) {
	return nil, nil
}
func (r *memoryDraftRepo) UpdateContent(string, string, string) (*database.Draft, error) {
	return nil, nil
}
func (r *memoryDraftRepo) MarkPublished(string) (*database.Draft, error) {
	return nil, nil
}

func scenarioProvider() *scriptedProvider {
	return &scriptedProvider{respond: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "research assistant"):
			return `{"summary":"Research summary","keyPoints":["KP1"],"angles":["A1"],"sources":["S1"]}`, nil
		case strings.Contains(prompt, "Twitter/X thread"):
			return "1/ First tweet\n\n2/ Second tweet", nil
		case strings.Contains(prompt, "LinkedIn post"):
			return "LinkedIn post about AI", nil
		case strings.Contains(prompt, "blog article"):
			return "# Blog Title\n\nBlog content here", nil
		default:
			return "", errors.New("unexpected prompt")
		}
	}}
}

func TestPipelineConcreteScenario(t *testing.T) {
	provider := scenarioProvider()
	repo := newMemoryDraftRepo()

	pipeline := NewPipeline(
		NewResearchEngine(provider),
		NewFormatGenerator(provider, nil),
		brand.NewLoader(""),
		repo,
	)

	draft, err := pipeline.Run(context.Background(), "AI trends 2026", PipelineOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if draft.Status != database.StatusDraft {
		t.Errorf("Expected status 'draft', got '%s'", draft.Status)
	}
	if draft.Research.Summary != "Research summary" {
		t.Errorf("Unexpected research summary %q", draft.Research.Summary)
	}
	if draft.Formats.XThread != "1/ First tweet\n\n2/ Second tweet" {
		t.Errorf("Unexpected xThread %q", draft.Formats.XThread)
	}
	if draft.Formats.LinkedinPost != "LinkedIn post about AI" {
		t.Errorf("Unexpected linkedinPost %q", draft.Formats.LinkedinPost)
	}
	if draft.Formats.BlogArticle != "# Blog Title\n\nBlog content here" {
		t.Errorf("Unexpected blogArticle %q", draft.Formats.BlogArticle)
	}
}

func TestPipelineAlwaysProducesNonEmptyDraft(t *testing.T) {
	provider := scenarioProvider()
	repo := newMemoryDraftRepo()

	pipeline := NewPipeline(
		NewResearchEngine(provider),
		NewFormatGenerator(provider, nil),
		brand.NewLoader(""),
		repo,
	)

	draft, err := pipeline.Run(context.Background(), "any topic", PipelineOptions{Context: "extra"})
	if err != nil {
		t.Fatal(err)
	}
	if draft.Research.Summary == "" {
		t.Error("Draft research summary should be non-empty")
	}
	if draft.Formats.XThread == "" || draft.Formats.LinkedinPost == "" || draft.Formats.BlogArticle == "" {
		t.Error("All three formats should be populated at creation")
	}
}

func TestPipelineFailFastCreatesNoPartialDraft(t *testing.T) {
	provider := &scriptedProvider{respond: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "research assistant"):
			return `{"summary":"s","keyPoints":[],"angles":[],"sources":[]}`, nil
		case strings.Contains(prompt, "LinkedIn post"):
			return "", errors.New("generator blew up")
		default:
			return "fine output", nil
		}
	}}
	repo := newMemoryDraftRepo()

	pipeline := NewPipeline(
		NewResearchEngine(provider),
		NewFormatGenerator(provider, nil),
		brand.NewLoader(""),
		repo,
	)

	if _, err := pipeline.Run(context.Background(), "topic", PipelineOptions{}); err == nil {
		t.Fatal("Expected the pipeline to fail when one format generation fails")
	}

	if len(repo.drafts) != 0 {
		t.Errorf("No partial draft should be created on failure, found %d", len(repo.drafts))
	}
}

func TestPipelineUsesAlternateGenerator(t *testing.T) {
	defaultProvider := scenarioProvider()
	altProvider := scenarioProvider()
	repo := newMemoryDraftRepo()

	pipeline := NewPipeline(
		NewResearchEngine(defaultProvider),
		NewFormatGenerator(defaultProvider, altProvider),
		brand.NewLoader(""),
		repo,
	)

	if _, err := pipeline.Run(context.Background(), "topic", PipelineOptions{UseAlt: true}); err != nil {
		t.Fatal(err)
	}

	// Research stays on the default provider; the three formats go alt.
	if len(defaultProvider.prompts) != 1 {
		t.Errorf("Default provider should only handle research, handled %d prompts", len(defaultProvider.prompts))
	}
	if len(altProvider.prompts) != 3 {
		t.Errorf("Alternate provider should handle the three formats, handled %d prompts", len(altProvider.prompts))
	}
}

func TestPipelineGuidelinesOverride(t *testing.T) {
	provider := scenarioProvider()
	repo := newMemoryDraftRepo()

	pipeline := NewPipeline(
		NewResearchEngine(provider),
		NewFormatGenerator(provider, nil),
		brand.NewLoader(""),
		repo,
	)

	if _, err := pipeline.Run(context.Background(), "topic", PipelineOptions{
		Guidelines: "Speak like a pirate.",
	}); err != nil {
		t.Fatal(err)
	}

	found := 0
	for _, prompt := range provider.prompts {
		if strings.Contains(prompt, "Speak like a pirate.") {
			found++
		}
	}
	if found != 3 {
		t.Errorf("Request-supplied guidelines should reach all three format prompts, reached %d", found)
	}
}

func TestGenerateFormatUnknownFormat(t *testing.T) {
	generator := NewFormatGenerator(scenarioProvider(), nil)

	if _, err := generator.GenerateFormat(context.Background(), "tiktokScript", "topic", nil, "", false); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestGenerateFormatAltUnconfigured(t *testing.T) {
	generator := NewFormatGenerator(scenarioProvider(), nil)

	_, err := generator.GenerateFormat(context.Background(), database.FormatXThread, "topic", nil, "", true)
	if err == nil {
		t.Error("Expected error when the alternate generator is requested but unconfigured")
	}
}
