// internal/database/db.go
//
// Database helpers for the leaderboard.
// Responsibilities:
//   - Opening SQLite (WAL, busy timeout, foreign keys) or PostgreSQL
//     (pgx stdlib driver) handles behind database/sql.
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Rewriting "?" placeholders for dialects that number them.

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a driver name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported sql dialect %q", s)
}

// Open opens a database for dialect d and verifies the connection.
//
// For SQLite, dsn is a file path; its parent directory is created and the
// handle is configured with a busy timeout and WAL journaling.
// For Postgres, dsn is passed to pgx unchanged.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch d {
	case SQLite:
		db, err = openSQLite(dsn)
	case Postgres:
		db, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", d)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	return db, nil
}

func openSQLite(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/hangman.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Migrate applies the embedded migrations for dialect d.
//
// - Uses a _migrations table to track applied files.
// - Executes each *.sql file in lexical order, each in its own transaction.
// - Skips files already applied.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	fsys, err := assets.Migrations(string(d))
	if err != nil {
		return err
	}
	return MigrateFS(ctx, db, d, fsys)
}

// MigrateFS applies *.sql files found at the root of fsys.
func MigrateFS(ctx context.Context, db *sql.DB, d Dialect, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, Rebind(d, `SELECT 1 FROM _migrations WHERE name=?`), f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, Rebind(d, `INSERT INTO _migrations(name) VALUES (?)`), f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Str("dialect", string(d)).Msg("applied")
	}
	return nil
}

// Rebind rewrites "?" placeholders to "$1, $2, ..." for Postgres.
// Queries must not contain literal question marks.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
