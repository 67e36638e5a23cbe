package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/draftdeck/draftdeck/app/blotato"
	"github.com/draftdeck/draftdeck/app/database"
)

// ReconcilePostsTask polls the publisher for every open scheduled post and
// folds the provider's verdict back into local state: a published post marks
// its draft published and closes the record, a failed post closes the record
// with the provider error. Posts still queued or scheduled stay open for the
// next pass.
type ReconcilePostsTask struct {
	Task
	publisher  PostStatusClient
	draftRepo  database.DraftRepository
	recordRepo database.PublishRecordRepository
}

func NewReconcilePostsTask(publisher PostStatusClient, draftRepo database.DraftRepository,
	recordRepo database.PublishRecordRepository) *ReconcilePostsTask {
	return &ReconcilePostsTask{
		Task:       NewTask(TaskTypeReconcilePosts),
		publisher:  publisher,
		draftRepo:  draftRepo,
		recordRepo: recordRepo,
	}
}

func (t *ReconcilePostsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := t.recordRepo.ListOpen()
	if err != nil {
		return fmt.Errorf("failed to list open publish records: %w", err)
	}

	if len(records) == 0 {
		slog.Debug("No open publish records to reconcile")
		return nil
	}

	publishedCount := 0
	failedCount := 0
	errorCount := 0

	for _, record := range records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome, err := t.reconcileRecord(ctx, record)
		if err != nil {
			slog.Error("Failed to reconcile publish record", "record_id", record.ID, "post_id", record.PostID, "error", err)
			errorCount++
			continue
		}

		switch outcome {
		case database.RecordStatusPublished:
			publishedCount++
		case database.RecordStatusFailed:
			failedCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"records", len(records),
		"published", publishedCount,
		"failed", failedCount,
		"errors", errorCount)

	return nil
}

func (t *ReconcilePostsTask) reconcileRecord(ctx context.Context, record database.PublishRecord) (database.PublishRecordStatus, error) {
	post, err := t.publisher.PostStatus(ctx, record.PostID)
	if err != nil {
		return record.Status, fmt.Errorf("failed to query post status: %w", err)
	}

	switch post.Status {
	case blotato.PostStatusPublished:
		if _, err := t.draftRepo.MarkPublished(record.DraftID); err != nil {
			return record.Status, fmt.Errorf("failed to mark draft published: %w", err)
		}
		if err := t.recordRepo.Close(record.ID, database.RecordStatusPublished, ""); err != nil {
			return record.Status, fmt.Errorf("failed to close publish record: %w", err)
		}
		slog.Debug("Scheduled post went live", "draft", record.DraftID, "post", record.PostID)
		return database.RecordStatusPublished, nil

	case blotato.PostStatusFailed:
		if err := t.recordRepo.Close(record.ID, database.RecordStatusFailed, platformError(post)); err != nil {
			return record.Status, fmt.Errorf("failed to close publish record: %w", err)
		}
		slog.Warn("Scheduled post failed on provider", "draft", record.DraftID, "post", record.PostID)
		return database.RecordStatusFailed, nil

	default:
		slog.Debug("Post still pending on provider", "post", record.PostID, "status", post.Status)
		return database.RecordStatusOpen, nil
	}
}

func platformError(post *blotato.PublishResponse) string {
	for _, result := range post.Platforms {
		if result.Error != "" {
			return fmt.Sprintf("%s: %s", result.Platform, result.Error)
		}
	}
	return "provider reported failure"
}
