package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var pragmas = []struct{ stmt, what string }{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
}

// OpenDB opens the schedule store at path and brings its schema up to date.
// An in-memory store is pinned to a single connection: each new connection
// would otherwise start from an empty database.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	}

	fail := func(what string, err error) (*sql.DB, error) {
		db.Close()
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fail(p.what, err)
		}
	}
	if err := Migrate(db); err != nil {
		return fail("running migrations", err)
	}
	return db, nil
}
