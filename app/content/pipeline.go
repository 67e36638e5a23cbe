package content

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/draftdeck/draftdeck/app/brand"
	"github.com/draftdeck/draftdeck/app/database"
)

type PipelineOptions struct {
	// Context is extra research context supplied by the caller.
	Context string
	// Guidelines overrides the configured guidelines file for this run.
	Guidelines string
	// UseAlt routes format generation through the alternate copywriter.
	UseAlt bool
}

// Pipeline runs topic -> research -> three concurrent format generations ->
// draft creation. The fan-out join is all-or-nothing: if any format fails,
// no draft is created and the whole run fails; callers retry the entire call.
type Pipeline struct {
	research   *ResearchEngine
	generator  *FormatGenerator
	guidelines *brand.Loader
	drafts     database.DraftRepository
}

func NewPipeline(research *ResearchEngine, generator *FormatGenerator,
	guidelines *brand.Loader, drafts database.DraftRepository) *Pipeline {
	return &Pipeline{
		research:   research,
		generator:  generator,
		guidelines: guidelines,
		drafts:     drafts,
	}
}

func (p *Pipeline) Run(ctx context.Context, topic string, opts PipelineOptions) (*database.Draft, error) {
	guidelines := opts.Guidelines
	if guidelines == "" && p.guidelines != nil {
		loaded, err := p.guidelines.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load brand guidelines: %w", err)
		}
		guidelines = loaded
	}

	research, err := p.research.Research(ctx, topic, opts.Context)
	if err != nil {
		return nil, err
	}

	var formats database.Formats

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := p.generator.GenerateFormat(groupCtx, database.FormatXThread, topic, research, guidelines, opts.UseAlt)
		formats.XThread = text
		return err
	})
	g.Go(func() error {
		text, err := p.generator.GenerateFormat(groupCtx, database.FormatLinkedinPost, topic, research, guidelines, opts.UseAlt)
		formats.LinkedinPost = text
		return err
	})
	g.Go(func() error {
		text, err := p.generator.GenerateFormat(groupCtx, database.FormatBlogArticle, topic, research, guidelines, opts.UseAlt)
		formats.BlogArticle = text
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	draft, err := p.drafts.Create(topic, *research, formats)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	slog.Info("Content pipeline completed", "draft", draft.ID, "topic", topic, "alt_generator", opts.UseAlt)

	return draft, nil
}
