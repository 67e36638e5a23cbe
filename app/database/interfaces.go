package database

import (
	"time"
)

// DraftRepository owns the draft approval lifecycle. Mutators return
// (nil, nil) for unknown ids, never an error; callers treat nil as not found.
type DraftRepository interface {
	Create(topic string, research Research, formats Formats) (*Draft, error)
	Get(id string) (*Draft, error)
	List(status string) ([]Draft, error)

	Approve(id string) (*Draft, error)
	Reject(id string, feedback string) (*Draft, error)
	UpdateContent(id string, format string, content string) (*Draft, error)
	MarkPublished(id string) (*Draft, error)
}

type PublishRecordRepository interface {
	Create(draftID string, postID string, scheduledAt *time.Time) (*PublishRecord, error)
	ListOpen() ([]PublishRecord, error)
	Close(id string, status PublishRecordStatus, errorMsg string) error
}
