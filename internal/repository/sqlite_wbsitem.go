package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteWBSItemRepo implements WBSItemRepo using a SQLite database.
type SQLiteWBSItemRepo struct {
	db db.DBTX
}

// NewSQLiteWBSItemRepo creates a new SQLiteWBSItemRepo.
func NewSQLiteWBSItemRepo(conn db.DBTX) *SQLiteWBSItemRepo {
	return &SQLiteWBSItemRepo{db: conn}
}

const wbsItemColumns = `id, project_id, parent_id, code, title, type, status,
	estimated_hours, aggressive_hours, safe_hours, actual_hours,
	planned_start, planned_end, assignee, sort_order, created_at, updated_at`

// Rows come back in display order: sort_order first, code as tie-break.
const wbsItemOrder = ` ORDER BY sort_order, code, created_at`

func (r *SQLiteWBSItemRepo) Create(ctx context.Context, w *domain.WBSItem) error {
	query := `INSERT INTO wbs_items (` + wbsItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ProjectID,
		nullableStringToValue(w.ParentID),
		w.Code,
		w.Title,
		string(w.Type),
		string(w.Status),
		nullableFloatToValue(w.EstimatedHours),
		nullableFloatToValue(w.AggressiveHours),
		nullableFloatToValue(w.SafeHours),
		nullableFloatToValue(w.ActualHours),
		nullableTimeToString(w.PlannedStart, time.RFC3339),
		nullableTimeToString(w.PlannedEnd, time.RFC3339),
		w.Assignee,
		w.SortOrder,
		w.CreatedAt.UTC().Format(time.RFC3339),
		w.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs item: %w", err)
	}
	return nil
}

func (r *SQLiteWBSItemRepo) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+wbsItemColumns+` FROM wbs_items WHERE id = ?`, id)
	return scanWBSItem(row)
}

func (r *SQLiteWBSItemRepo) GetByCode(ctx context.Context, projectID, code string) (*domain.WBSItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wbsItemColumns+` FROM wbs_items WHERE project_id = ? AND code = ? ORDER BY created_at LIMIT 1`,
		projectID, code)
	return scanWBSItem(row)
}

func (r *SQLiteWBSItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wbsItemColumns+` FROM wbs_items WHERE project_id = ?`+wbsItemOrder, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items: %w", err)
	}
	defer rows.Close()
	return scanWBSItems(rows)
}

// ListChildren returns the direct children of parentID, or the top-level items
// of the project when parentID is empty.
func (r *SQLiteWBSItemRepo) ListChildren(ctx context.Context, projectID, parentID string) ([]*domain.WBSItem, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+wbsItemColumns+` FROM wbs_items WHERE project_id = ? AND parent_id IS NULL`+wbsItemOrder, projectID)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+wbsItemColumns+` FROM wbs_items WHERE project_id = ? AND parent_id = ?`+wbsItemOrder, projectID, parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing wbs children: %w", err)
	}
	defer rows.Close()
	return scanWBSItems(rows)
}

// CountChildren counts direct children of parentID (top-level items when empty).
func (r *SQLiteWBSItemRepo) CountChildren(ctx context.Context, projectID, parentID string) (int, error) {
	var n int
	var err error
	if parentID == "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM wbs_items WHERE project_id = ? AND parent_id IS NULL`, projectID).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM wbs_items WHERE project_id = ? AND parent_id = ?`, projectID, parentID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("counting wbs children: %w", err)
	}
	return n, nil
}

func (r *SQLiteWBSItemRepo) Update(ctx context.Context, w *domain.WBSItem) error {
	query := `UPDATE wbs_items SET parent_id = ?, code = ?, title = ?, type = ?, status = ?,
		estimated_hours = ?, aggressive_hours = ?, safe_hours = ?, actual_hours = ?,
		planned_start = ?, planned_end = ?, assignee = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(w.ParentID),
		w.Code,
		w.Title,
		string(w.Type),
		string(w.Status),
		nullableFloatToValue(w.EstimatedHours),
		nullableFloatToValue(w.AggressiveHours),
		nullableFloatToValue(w.SafeHours),
		nullableFloatToValue(w.ActualHours),
		nullableTimeToString(w.PlannedStart, time.RFC3339),
		nullableTimeToString(w.PlannedEnd, time.RFC3339),
		w.Assignee,
		w.SortOrder,
		w.UpdatedAt.UTC().Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs item: %w", err)
	}
	return expectOneRow(res, "wbs item")
}

func (r *SQLiteWBSItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wbs_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting wbs item: %w", err)
	}
	return expectOneRow(res, "wbs item")
}

func scanWBSItem(s scanner) (*domain.WBSItem, error) {
	var w domain.WBSItem
	var parentID, startStr, endStr sql.NullString
	var estimated, aggressive, safe, actual sql.NullFloat64
	var typeStr, statusStr, createdAtStr, updatedAtStr string

	err := s.Scan(
		&w.ID, &w.ProjectID, &parentID, &w.Code, &w.Title, &typeStr, &statusStr,
		&estimated, &aggressive, &safe, &actual,
		&startStr, &endStr, &w.Assignee, &w.SortOrder,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wbs item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wbs item: %w", err)
	}

	w.ParentID = nullableString(parentID)
	w.Type = domain.ItemType(typeStr)
	w.Status = domain.ItemStatus(statusStr)
	w.EstimatedHours = nullableFloat(estimated)
	w.AggressiveHours = nullableFloat(aggressive)
	w.SafeHours = nullableFloat(safe)
	w.ActualHours = nullableFloat(actual)
	w.PlannedStart = parseNullableTime(startStr, time.RFC3339)
	w.PlannedEnd = parseNullableTime(endStr, time.RFC3339)

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &w, nil
}

func scanWBSItems(rows *sql.Rows) ([]*domain.WBSItem, error) {
	var items []*domain.WBSItem
	for rows.Next() {
		w, err := scanWBSItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return items, nil
}
