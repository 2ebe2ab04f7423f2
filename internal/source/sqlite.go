package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/riverfjs/autolink-go/internal/types"
)

// DefaultQuery selects (key, alias) pairs in insertion order.
const DefaultQuery = `SELECT "key", alias FROM things ORDER BY rowid`

// SQL is a Source that runs a query returning (key, alias) rows.
type SQL struct {
	snapshot
	db    *sql.DB
	query string
	owned bool
}

// NewSQL wraps an open database. The caller keeps ownership of db.
func NewSQL(db *sql.DB, query string) *SQL {
	if query == "" {
		query = DefaultQuery
	}
	return &SQL{db: db, query: query}
}

// OpenSQLite opens the SQLite database at path. Close releases it.
func OpenSQLite(path, query string) (*SQL, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	s := NewSQL(db, query)
	s.owned = true
	return s, nil
}

// Refresh implements Source.
func (s *SQL) Refresh(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []types.Entity
	for rows.Next() {
		var e types.Entity
		var alias sql.NullString
		if err := rows.Scan(&e.Key, &alias); err != nil {
			return fmt.Errorf("failed to scan entity: %w", err)
		}
		e.Alias = alias.String
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read entities: %w", err)
	}
	s.set(entities)
	return nil
}

// Entities implements Source.
func (s *SQL) Entities() []types.Entity {
	return s.get()
}

// Close closes the database if OpenSQLite opened it.
func (s *SQL) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
