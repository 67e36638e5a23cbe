package tasks

import (
	"context"

	"github.com/draftdeck/draftdeck/app/blotato"
)

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the main application to manage the reconciliation worker pool.
// Example usage:
//
//	scheduler := NewScheduler(publisher, draftRepo, recordRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// PostStatusClient is the slice of the publisher client the reconciler needs.
type PostStatusClient interface {
	PostStatus(ctx context.Context, id string) (*blotato.PublishResponse, error)
}
