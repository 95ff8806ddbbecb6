package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects placeholder and case-insensitive match syntax.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a database/sql driver name to a dialect; unknown drivers
// fall back to MySQL.
func ParseDialect(driver string) Dialect {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pq":
		return Postgres
	default:
		return MySQL
	}
}

// Placeholder returns the n-th (1-based) bind parameter marker.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Columns maps logical field names to SQL column expressions.
type Columns map[string]string

// UnknownFieldError is returned when a predicate names a field the column map
// does not cover.
type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q tidak dikenal", e.Field)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type renderer struct {
	d    Dialect
	cols Columns
	args []any
}

func (r *renderer) bind(v any) string {
	r.args = append(r.args, v)
	return r.d.Placeholder(len(r.args))
}

func (r *renderer) column(field string) (string, error) {
	col, ok := r.cols[field]
	if !ok || col == "" {
		return "", UnknownFieldError{Field: field}
	}
	return col, nil
}

func (r *renderer) predicate(p Predicate) (string, error) {
	if p.Op == OpOr {
		parts := make([]string, 0, len(p.Any))
		for _, sub := range p.Any {
			s, err := r.predicate(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		if len(parts) == 0 {
			return "1=0", nil
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}

	col, err := r.column(p.Field)
	if err != nil {
		return "", err
	}
	switch p.Op {
	case OpEq:
		return col + " = " + r.bind(p.Value), nil
	case OpGte:
		return col + " >= " + r.bind(p.Value), nil
	case OpLte:
		return col + " <= " + r.bind(p.Value), nil
	case OpILike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(p.Value)) + "%"
		if r.d == Postgres {
			return col + " ILIKE " + r.bind(pattern), nil
		}
		return "LOWER(" + col + ") LIKE LOWER(" + r.bind(pattern) + ")", nil
	case OpIn:
		if len(p.Values) == 0 {
			return "1=0", nil
		}
		marks := make([]string, len(p.Values))
		for i, v := range p.Values {
			marks[i] = r.bind(v)
		}
		return col + " IN (" + strings.Join(marks, ",") + ")", nil
	}
	return "", fmt.Errorf("operator %q tidak didukung", p.Op)
}

// Render turns preds into a WHERE body joined by AND plus its bind args.
// An empty list renders as "1=1".
func Render(d Dialect, preds []Predicate, cols Columns) (string, []any, error) {
	r := &renderer{d: d, cols: cols}
	where := []string{}
	for _, p := range preds {
		s, err := r.predicate(p)
		if err != nil {
			return "", nil, err
		}
		where = append(where, s)
	}
	if len(where) == 0 {
		return "1=1", nil, nil
	}
	return strings.Join(where, " AND "), r.args, nil
}

// RenderOrder renders an ORDER BY body.
func RenderOrder(order []Order, cols Columns) (string, error) {
	parts := make([]string, 0, len(order))
	for _, o := range order {
		col, ok := cols[o.Field]
		if !ok || col == "" {
			return "", UnknownFieldError{Field: o.Field}
		}
		dir := "DESC"
		if o.Ascending {
			dir = "ASC"
		}
		parts = append(parts, col+" "+dir)
	}
	return strings.Join(parts, ", "), nil
}
