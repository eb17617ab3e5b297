// Package db opens the SQLite catalog that holds the pricing rates and the
// sample gallery. Orders are never written here.
//
// The server reads the catalog on every quote and order while the operator
// CLI may update rates from another process, so file databases run in WAL
// mode with a busy timeout. In-memory databases exist per connection and are
// pinned to a single one.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// busyTimeoutMillis bounds how long a reader waits on a concurrent
// `octozek rates set` before failing.
const busyTimeoutMillis = 5000

// Open opens the catalog at dbPath and checks that it answers.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dbPath, err)
	}
	if isMemory(dbPath) {
		database.SetMaxOpenConns(1)
	}

	pragmas := fmt.Sprintf("PRAGMA journal_mode = WAL; PRAGMA busy_timeout = %d;", busyTimeoutMillis)
	if _, err := database.ExecContext(ctx, pragmas); err != nil {
		database.Close()
		return nil, fmt.Errorf("configure catalog %s: %w", dbPath, err)
	}

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping catalog %s: %w", dbPath, err)
	}

	return database, nil
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}
