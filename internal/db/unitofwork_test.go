package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertProject(ctx context.Context, tx db.DBTX, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO projects (id, short_id, name, status, buffer_ratio, created_at, updated_at)
		 VALUES (?, ?, ?, 'active', 0.5, ?, ?)`, id, "UOW"+id, "Project "+id, now, now)
	return err
}

func projectExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_Commits(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "01"); err != nil {
			return err
		}
		return insertProject(ctx, tx, "02")
	})
	require.NoError(t, err)
	assert.True(t, projectExists(t, database, "01"))
	assert.True(t, projectExists(t, database, "02"))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	boom := errors.New("second write failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "01"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, projectExists(t, database, "01"))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProject(ctx, tx, "01")
			panic("boom")
		})
	})
	assert.False(t, projectExists(t, database, "01"))
}

func TestWithinTx_CancelledBeforeCommit(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx, cancel := context.WithCancel(context.Background())

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "01"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, projectExists(t, database, "01"))
}
