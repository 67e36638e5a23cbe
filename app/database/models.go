package database

import (
	"time"
)

type DraftStatus string

const (
	StatusDraft     DraftStatus = "draft"
	StatusApproved  DraftStatus = "approved"
	StatusRejected  DraftStatus = "rejected"
	StatusPublished DraftStatus = "published"
)

// Format keys for the three content variants generated per draft.
const (
	FormatXThread      = "xThread"
	FormatLinkedinPost = "linkedinPost"
	FormatBlogArticle  = "blogArticle"
)

type Research struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	Angles    []string `json:"angles"`
	Sources   []string `json:"sources"`
}

type Formats struct {
	XThread      string `json:"xThread"`
	LinkedinPost string `json:"linkedinPost"`
	BlogArticle  string `json:"blogArticle"`
}

// Draft is a content draft tracked through the approval lifecycle.
// Drafts are never deleted; status only moves through repository operations.
type Draft struct {
	ID        string      `json:"id"`
	Topic     string      `json:"topic"`
	Research  Research    `json:"research"`
	Formats   Formats     `json:"formats"`
	Status    DraftStatus `json:"status"`
	Feedback  string      `json:"feedback,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type PublishRecordStatus string

const (
	RecordStatusOpen      PublishRecordStatus = "open"
	RecordStatusPublished PublishRecordStatus = "published"
	RecordStatusFailed    PublishRecordStatus = "failed"
)

// PublishRecord is a local reference to a scheduled provider post. The
// provider's status stays authoritative; the record only tracks which remote
// post belongs to which draft so the reconciler knows what to poll.
type PublishRecord struct {
	ID          string              `json:"id"`
	DraftID     string              `json:"draftId"`
	PostID      string              `json:"postId"`
	Status      PublishRecordStatus `json:"status"`
	Error       string              `json:"error,omitempty"`
	ScheduledAt *time.Time          `json:"scheduledAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
