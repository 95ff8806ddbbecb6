package query

import (
	"fmt"
	"strings"
)

// Collection names a listing table.
type Collection string

const (
	Jobs      Collection = "jobs"
	Companies Collection = "companies"
	Articles  Collection = "articles"
)

// Op is the kind of a predicate.
type Op string

const (
	OpEq    Op = "eq"
	OpILike Op = "ilike"
	OpIn    Op = "in"
	OpGte   Op = "gte"
	OpLte   Op = "lte"
	OpOr    Op = "or"
)

// Predicate is one condition of a listing query. Field is a logical field
// name; the repository maps it to a column.
type Predicate struct {
	Op     Op
	Field  string
	Value  any
	Values []string
	Any    []Predicate
}

func Eq(field string, value any) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

// ILike matches value as a case-insensitive substring of field. Value keeps
// the raw text; wildcards are added when rendering.
func ILike(field, value string) Predicate {
	return Predicate{Op: OpILike, Field: field, Value: value}
}

func In(field string, values []string) Predicate {
	return Predicate{Op: OpIn, Field: field, Values: append([]string(nil), values...)}
}

func Gte(field string, value int64) Predicate {
	return Predicate{Op: OpGte, Field: field, Value: value}
}

func Lte(field string, value int64) Predicate {
	return Predicate{Op: OpLte, Field: field, Value: value}
}

func Or(preds ...Predicate) Predicate {
	return Predicate{Op: OpOr, Any: preds}
}

// String gives a stable description, used for logs, cache keys and tests.
func (p Predicate) String() string {
	switch p.Op {
	case OpOr:
		parts := make([]string, len(p.Any))
		for i, sub := range p.Any {
			parts[i] = sub.String()
		}
		return "or(" + strings.Join(parts, ",") + ")"
	case OpIn:
		return fmt.Sprintf("in(%s,[%s])", p.Field, strings.Join(p.Values, ","))
	case OpILike:
		return fmt.Sprintf("ilike(%s,%%%v%%)", p.Field, p.Value)
	default:
		return fmt.Sprintf("%s(%s,%v)", p.Op, p.Field, p.Value)
	}
}

// Order is one ORDER BY term.
type Order struct {
	Field     string
	Ascending bool
}

func (o Order) String() string {
	if o.Ascending {
		return o.Field + ".asc"
	}
	return o.Field + ".desc"
}

// Plan is the translated form of a filter state against one collection.
type Plan struct {
	Collection Collection
	Predicates []Predicate
	Order      []Order
}

// Describe joins every predicate and order term; equal plans describe
// identically.
func (p Plan) Describe() string {
	parts := make([]string, 0, len(p.Predicates)+len(p.Order)+1)
	parts = append(parts, string(p.Collection))
	for _, pr := range p.Predicates {
		parts = append(parts, pr.String())
	}
	for _, o := range p.Order {
		parts = append(parts, "order="+o.String())
	}
	return strings.Join(parts, ";")
}

// Range is the half-open window [Offset, Offset+Limit).
type Range struct {
	Offset int
	Limit  int
}
