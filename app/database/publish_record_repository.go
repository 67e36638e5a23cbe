package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SQLPublishRecordRepository struct {
	db *DB
}

var _ PublishRecordRepository = (*SQLPublishRecordRepository)(nil)

func NewPublishRecordRepository(db *DB) *SQLPublishRecordRepository {
	return &SQLPublishRecordRepository{db: db}
}

func (r *SQLPublishRecordRepository) Create(draftID string, postID string, scheduledAt *time.Time) (*PublishRecord, error) {
	now := time.Now().UTC()
	record := &PublishRecord{
		ID:          uuid.NewString(),
		DraftID:     draftID,
		PostID:      postID,
		Status:      RecordStatusOpen,
		ScheduledAt: scheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.Exec(`
		INSERT INTO publish_records (id, draft_id, post_id, status, scheduled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.DraftID, record.PostID, string(record.Status), record.ScheduledAt, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert publish record: %w", err)
	}

	return record, nil
}

func (r *SQLPublishRecordRepository) ListOpen() ([]PublishRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, draft_id, post_id, status, error, scheduled_at, created_at, updated_at
		FROM publish_records
		WHERE status = ?
		ORDER BY created_at
	`, string(RecordStatusOpen))
	if err != nil {
		return nil, fmt.Errorf("failed to list open publish records: %w", err)
	}
	defer rows.Close()

	records := make([]PublishRecord, 0)
	for rows.Next() {
		var record PublishRecord
		var status string
		err := rows.Scan(&record.ID, &record.DraftID, &record.PostID, &status,
			&record.Error, &record.ScheduledAt, &record.CreatedAt, &record.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publish record: %w", err)
		}
		record.Status = PublishRecordStatus(status)
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *SQLPublishRecordRepository) Close(id string, status PublishRecordStatus, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE publish_records SET status = ?, error = ?, updated_at = ? WHERE id = ?
	`, string(status), errorMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to close publish record: %w", err)
	}

	return nil
}
