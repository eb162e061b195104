package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/gantry/internal/db"
)

// NewTestDB opens a migrated in-memory schedule store, closed at cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestFileDB opens a migrated store file in t.TempDir. Every pooled
// connection sees the same data, so concurrency tests use this one.
func NewTestFileDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "gantry.db"))
	if err != nil {
		t.Fatalf("opening file store: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailingUoW runs transactions like the real unit of work but makes the
// FailOn-th write fail with Err. When Match is set only statements
// containing it are counted, e.g. "INSERT INTO wbs_items" to fail on the
// second imported item regardless of how many other rows came first.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, u: u})
	})
}

type failingTx struct {
	db.DBTX
	u     *FailingUoW
	count atomic.Int32
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.u.Match == "" || strings.Contains(query, f.u.Match) {
		if f.count.Add(1) == f.u.FailOn {
			return nil, f.u.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
