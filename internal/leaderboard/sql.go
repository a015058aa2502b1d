package leaderboard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robalobadob/hangman/internal/database"
)

// SQLStore keeps scores in the "scores" table of a SQLite or Postgres database.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLStore wraps an open, migrated database handle.
func NewSQLStore(db *sql.DB, d database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d}
}

// Record implements Store.
func (s *SQLStore) Record(ctx context.Context, e Entry) (Entry, error) {
	_, err := s.db.ExecContext(ctx,
		database.Rebind(s.dialect, `INSERT INTO scores (user_name, score) VALUES (?, ?)`),
		e.User, e.Score,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert score: %w", err)
	}
	return e, nil
}

// Query implements Store.
// Ties on score are broken by byte-wise user name, then insertion order.
func (s *SQLStore) Query(ctx context.Context, offset, limit int) ([]Entry, error) {
	if err := checkRange(offset, limit); err != nil {
		return nil, err
	}
	out := []Entry{}
	if limit == 0 {
		return out, nil
	}

	order := `ORDER BY score ASC, user_name ASC, id ASC`
	if s.dialect == database.Postgres {
		order = `ORDER BY score ASC, user_name COLLATE "C" ASC, id ASC`
	}
	rows, err := s.db.QueryContext(ctx,
		database.Rebind(s.dialect, `SELECT user_name, score FROM scores `+order+` LIMIT ? OFFSET ?`),
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.User, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
