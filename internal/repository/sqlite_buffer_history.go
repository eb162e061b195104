package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteBufferHistoryRepo stores fever chart snapshots.
type SQLiteBufferHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteBufferHistoryRepo(conn db.DBTX) *SQLiteBufferHistoryRepo {
	return &SQLiteBufferHistoryRepo{db: conn}
}

func (r *SQLiteBufferHistoryRepo) Record(ctx context.Context, s *domain.BufferSnapshot) error {
	recordedAt := nowUTC()
	if !s.RecordedAt.IsZero() {
		recordedAt = s.RecordedAt.UTC().Format(time.RFC3339)
	}
	query := `INSERT INTO buffer_history (id, project_id, consumed_percent, progress_percent, fever, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.ProjectID, s.ConsumedPercent, s.ProgressPercent, s.Fever, recordedAt)
	if err != nil {
		return fmt.Errorf("inserting buffer snapshot: %w", err)
	}
	return nil
}

// ListByProject returns the newest limit snapshots in chronological order.
func (r *SQLiteBufferHistoryRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.BufferSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	query := `SELECT id, project_id, consumed_percent, progress_percent, fever, recorded_at FROM (
			SELECT * FROM buffer_history WHERE project_id = ? ORDER BY recorded_at DESC, id DESC LIMIT ?
		) ORDER BY recorded_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing buffer history: %w", err)
	}
	defer rows.Close()

	var out []*domain.BufferSnapshot
	for rows.Next() {
		var s domain.BufferSnapshot
		var recordedAtStr string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.ConsumedPercent, &s.ProgressPercent, &s.Fever, &recordedAtStr); err != nil {
			return nil, fmt.Errorf("scanning buffer snapshot: %w", err)
		}
		t, err := time.Parse(time.RFC3339, recordedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		s.RecordedAt = t
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buffer history: %w", err)
	}
	return out, nil
}
