package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

// Create inserts the edge, or updates its lag when it already exists.
func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO wbs_dependencies (predecessor_id, successor_id, lag_days, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(predecessor_id, successor_id) DO UPDATE SET lag_days = excluded.lag_days`
	_, err := r.db.ExecContext(ctx, query, d.PredecessorID, d.SuccessorID, d.LagDays,
		d.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wbs_dependencies WHERE predecessor_id = ? AND successor_id = ?`, predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return expectOneRow(res, "dependency")
}

// ListByProject returns every edge whose predecessor belongs to the project,
// oldest first.
func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT d.predecessor_id, d.successor_id, d.lag_days, d.created_at
		FROM wbs_dependencies d
		JOIN wbs_items w ON d.predecessor_id = w.id
		WHERE w.project_id = ?
		ORDER BY d.created_at, d.predecessor_id, d.successor_id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project dependencies: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListPredecessors(ctx context.Context, itemID string) ([]domain.Dependency, error) {
	query := `SELECT predecessor_id, successor_id, lag_days, created_at
		FROM wbs_dependencies WHERE successor_id = ? ORDER BY created_at, predecessor_id`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing predecessors: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListSuccessors(ctx context.Context, itemID string) ([]domain.Dependency, error) {
	query := `SELECT predecessor_id, successor_id, lag_days, created_at
		FROM wbs_dependencies WHERE predecessor_id = ? ORDER BY created_at, successor_id`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing successors: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

func scanDependencies(rows *sql.Rows) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var createdAtStr string
		if err := rows.Scan(&d.PredecessorID, &d.SuccessorID, &d.LagDays, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		created, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		d.CreatedAt = created
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
