package db

import (
	"context"
	"database/sql"

	"jenjangkarir/internal/query"
)

// Querier is the read side shared by *sql.DB and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// HasTable checks information_schema for table in the current schema.
// Errors, including bad connections, read as "missing".
func HasTable(ctx context.Context, q Querier, d query.Dialect, table string) bool {
	stmt := `SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1`
	if d == query.Postgres {
		stmt = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1 LIMIT 1`
	}
	var name sql.NullString
	if err := q.QueryRowContext(ctx, stmt, table).Scan(&name); err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// MissingTables returns the entries of tables that HasTable cannot find.
func MissingTables(ctx context.Context, q Querier, d query.Dialect, tables ...string) []string {
	missing := []string{}
	for _, t := range tables {
		if !HasTable(ctx, q, d, t) {
			missing = append(missing, t)
		}
	}
	return missing
}
