package blotato

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/draftdeck/draftdeck/app/content"
	"github.com/draftdeck/draftdeck/app/database"
)

// ErrDraftNotFound signals an unknown draft id on a publish call.
var ErrDraftNotFound = errors.New("draft not found")

// InvalidDraftStateError is returned when a draft's status does not allow
// publishing (only draft and approved drafts may be published).
type InvalidDraftStateError struct {
	Status database.DraftStatus
}

func (e *InvalidDraftStateError) Error() string {
	return fmt.Sprintf("draft cannot be published from status %q", e.Status)
}

type PublishDraftInput struct {
	DraftID     string
	Platforms   []string
	Format      string
	ScheduledAt *time.Time
	MediaURLs   []string
}

type PublishResult struct {
	DraftID string           `json:"draftId"`
	Result  *PublishResponse `json:"blotatoResult"`
	Content string           `json:"content"`
}

// Orchestrator maps drafts onto provider publish calls and keeps local draft
// status in step with the remote queue. An immediate publish marks the draft
// published; a scheduled publish leaves it untouched and records the remote
// post id for the background reconciler.
type Orchestrator struct {
	client  *Client
	drafts  database.DraftRepository
	records database.PublishRecordRepository
}

func NewOrchestrator(client *Client, drafts database.DraftRepository,
	records database.PublishRecordRepository) *Orchestrator {
	return &Orchestrator{
		client:  client,
		drafts:  drafts,
		records: records,
	}
}

func (o *Orchestrator) PublishDraft(ctx context.Context, in PublishDraftInput) (*PublishResult, error) {
	draft, err := o.drafts.Get(in.DraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	if draft.Status != database.StatusDraft && draft.Status != database.StatusApproved {
		return nil, &InvalidDraftStateError{Status: draft.Status}
	}

	raw, err := extractFormat(draft, in.Format)
	if err != nil {
		return nil, err
	}

	body := preparePlatformContent(raw, in.Platforms)

	resp, err := o.client.Publish(ctx, PublishRequest{
		Platforms:   in.Platforms,
		Content:     body,
		MediaURLs:   in.MediaURLs,
		ScheduledAt: in.ScheduledAt,
	})
	if err != nil {
		return nil, err
	}

	if in.ScheduledAt == nil {
		if _, err := o.drafts.MarkPublished(draft.ID); err != nil {
			return nil, fmt.Errorf("publish succeeded but failed to mark draft published: %w", err)
		}
	} else if o.records != nil {
		if _, err := o.records.Create(draft.ID, resp.ID, in.ScheduledAt); err != nil {
			slog.Error("Failed to record scheduled publish", "draft", draft.ID, "post", resp.ID, "error", err)
		}
	}

	slog.Info("Draft publish requested", "draft", draft.ID, "post", resp.ID,
		"platforms", strings.Join(in.Platforms, ","), "scheduled", in.ScheduledAt != nil)

	return &PublishResult{
		DraftID: draft.ID,
		Result:  resp,
		Content: body,
	}, nil
}

// PublishDirect pushes raw content with no draft coupling.
func (o *Orchestrator) PublishDirect(ctx context.Context, rawContent string, platforms []string,
	scheduledAt *time.Time, mediaURLs []string) (*PublishResponse, error) {

	return o.client.Publish(ctx, PublishRequest{
		Platforms:   platforms,
		Content:     preparePlatformContent(rawContent, platforms),
		MediaURLs:   mediaURLs,
		ScheduledAt: scheduledAt,
	})
}

func (o *Orchestrator) Queue(ctx context.Context) ([]PublishResponse, error) {
	return o.client.Queue(ctx)
}

func (o *Orchestrator) PostStatus(ctx context.Context, id string) (*PublishResponse, error) {
	return o.client.PostStatus(ctx, id)
}

func (o *Orchestrator) Cancel(ctx context.Context, id string) (bool, error) {
	return o.client.Cancel(ctx, id)
}

func (o *Orchestrator) Accounts(ctx context.Context) ([]Account, error) {
	return o.client.Accounts(ctx)
}

func extractFormat(draft *database.Draft, format string) (string, error) {
	switch format {
	case database.FormatXThread:
		return draft.Formats.XThread, nil
	case database.FormatLinkedinPost:
		return draft.Formats.LinkedinPost, nil
	case database.FormatBlogArticle:
		return draft.Formats.BlogArticle, nil
	default:
		return "", database.ErrUnknownFormat
	}
}

// preparePlatformContent applies platform length constraints when a single
// platform is targeted. Twitter threads are rejoined with blank lines; the
// provider splits them back into individual tweets. Multi-platform publishes
// send the raw content and leave adaptation to the provider.
func preparePlatformContent(raw string, platforms []string) string {
	if len(platforms) != 1 {
		return raw
	}

	chunks := content.FormatForPlatform(raw, platforms[0])

	return strings.Join(chunks, "\n\n")
}
