package repositories

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	intconfig "jenjangkarir/internal/config"
	"jenjangkarir/internal/query"
)

// Conn is the handle every repository embeds. A nil DB falls back to the
// shared connection from internal/config.
type Conn struct {
	DB      *sql.DB
	Dialect query.Dialect
}

func (c Conn) db() *sql.DB {
	if c.DB != nil {
		return c.DB
	}
	return intconfig.DB
}

// rebind rewrites "?" markers to "$n" for Postgres. A "?" inside a
// single-quoted literal is left alone.
func (c Conn) rebind(stmt string) string {
	if c.Dialect != query.Postgres {
		return stmt
	}
	var out strings.Builder
	n := 0
	quoted := false
	for _, r := range stmt {
		if r == '\'' {
			quoted = !quoted
		}
		if r == '?' && !quoted {
			n++
			out.WriteString("$" + strconv.Itoa(n))
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insert runs an INSERT and returns the new id. lib/pq has no
// LastInsertId, so Postgres goes through RETURNING.
func (c Conn) insert(ctx context.Context, q execQuerier, stmt string, args ...any) (int64, error) {
	if c.Dialect == query.Postgres {
		var id int64
		err := q.QueryRowContext(ctx, c.rebind(stmt)+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// affected returns sql.ErrNoRows when nothing matched.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
