package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownFormat is returned when a content update names a format that is
// not one of the three generated variants.
var ErrUnknownFormat = errors.New("unknown content format")

type SQLDraftRepository struct {
	db *DB
}

var _ DraftRepository = (*SQLDraftRepository)(nil)

func NewDraftRepository(db *DB) *SQLDraftRepository {
	return &SQLDraftRepository{db: db}
}

func (r *SQLDraftRepository) Create(topic string, research Research, formats Formats) (*Draft, error) {
	researchJSON, err := json.Marshal(research)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal research: %w", err)
	}

	now := time.Now().UTC()
	id := uuid.NewString()

	_, err = r.db.Exec(`
		INSERT INTO drafts (id, topic, research, x_thread, linkedin_post, blog_article, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, topic, string(researchJSON), formats.XThread, formats.LinkedinPost, formats.BlogArticle, string(StatusDraft), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert draft: %w", err)
	}

	return r.Get(id)
}

func (r *SQLDraftRepository) Get(id string) (*Draft, error) {
	row := r.db.QueryRow(`
		SELECT id, topic, research, x_thread, linkedin_post, blog_article, status, feedback, created_at, updated_at
		FROM drafts WHERE id = ?
	`, id)

	draft, err := scanDraft(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	return draft, nil
}

func (r *SQLDraftRepository) List(status string) ([]Draft, error) {
	query := `
		SELECT id, topic, research, x_thread, linkedin_post, blog_article, status, feedback, created_at, updated_at
		FROM drafts`
	args := []interface{}{}

	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]Draft, 0)
	for rows.Next() {
		draft, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, *draft)
	}

	return drafts, rows.Err()
}

// Approve sets status to approved. Repeated approval is a no-op state-wise but
// still refreshes updated_at.
func (r *SQLDraftRepository) Approve(id string) (*Draft, error) {
	return r.mutate(id, `UPDATE drafts SET status = ?, updated_at = ? WHERE id = ?`,
		string(StatusApproved), time.Now().UTC(), id)
}

func (r *SQLDraftRepository) Reject(id string, feedback string) (*Draft, error) {
	return r.mutate(id, `UPDATE drafts SET status = ?, feedback = ?, updated_at = ? WHERE id = ?`,
		string(StatusRejected), feedback, time.Now().UTC(), id)
}

// UpdateContent overwrites one format variant. Editing a rejected draft moves
// it back to draft; the stored feedback is no longer authoritative after that.
func (r *SQLDraftRepository) UpdateContent(id string, format string, content string) (*Draft, error) {
	var column string
	switch format {
	case FormatXThread:
		column = "x_thread"
	case FormatLinkedinPost:
		column = "linkedin_post"
	case FormatBlogArticle:
		column = "blog_article"
	default:
		return nil, ErrUnknownFormat
	}

	query := fmt.Sprintf(`
		UPDATE drafts
		SET %s = ?,
		    status = CASE WHEN status = 'rejected' THEN 'draft' ELSE status END,
		    updated_at = ?
		WHERE id = ?
	`, column)

	return r.mutate(id, query, content, time.Now().UTC(), id)
}

// MarkPublished is terminal; no operation transitions out of published.
func (r *SQLDraftRepository) MarkPublished(id string) (*Draft, error) {
	return r.mutate(id, `UPDATE drafts SET status = ?, updated_at = ? WHERE id = ?`,
		string(StatusPublished), time.Now().UTC(), id)
}

func (r *SQLDraftRepository) mutate(id string, query string, args ...interface{}) (*Draft, error) {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.Get(id)
}

func scanDraft(scan func(dest ...interface{}) error) (*Draft, error) {
	var draft Draft
	var researchJSON string
	var status string

	err := scan(&draft.ID, &draft.Topic, &researchJSON, &draft.Formats.XThread,
		&draft.Formats.LinkedinPost, &draft.Formats.BlogArticle, &status,
		&draft.Feedback, &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		return nil, err
	}

	draft.Status = DraftStatus(status)
	if err := json.Unmarshal([]byte(researchJSON), &draft.Research); err != nil {
		return nil, fmt.Errorf("failed to unmarshal research: %w", err)
	}

	return &draft, nil
}
