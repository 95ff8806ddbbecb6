package filter

import (
	"net/url"
	"strings"
)

// Recognized filter keys. They double as URL query parameter names.
const (
	KeyQuery       = "q"
	KeyLocation    = "location"
	KeyJobType     = "job_type"
	KeyCategory    = "category"
	KeyCompanySize = "company_size"
	KeySalaryMin   = "salary_min"
	KeySalaryMax   = "salary_max"
	KeySort        = "sort"
	KeyPage        = "page"
)

// scalarKeys hold at most one value. Everything else, including keys we do
// not know about, keeps every value so it survives a URL round trip.
var scalarKeys = map[string]bool{
	KeyQuery:     true,
	KeySalaryMin: true,
	KeySalaryMax: true,
	KeySort:      true,
	KeyPage:      true,
}

// IsMulti reports whether key accepts an ordered list of values.
func IsMulti(key string) bool {
	return !scalarKeys[key]
}

// State maps a filter key to its values. A key is present only when it has at
// least one non-blank value; scalar keys never hold more than one value.
type State map[string][]string

// clean drops blank entries and trims the rest. For scalar keys only the
// first usable value is kept.
func clean(key string, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
		if !IsMulti(key) {
			break
		}
	}
	return out
}

// set applies setFilter semantics in place: an empty result removes the key.
func (s State) set(key string, values []string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	vals := clean(key, values)
	if len(vals) == 0 {
		delete(s, key)
		return
	}
	s[key] = vals
}

// Get returns the first value of key, or "".
func (s State) Get(key string) string {
	if vals := s[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Values returns a copy of the values stored under key.
func (s State) Values(key string) []string {
	vals := s[key]
	if len(vals) == 0 {
		return nil
	}
	return append([]string(nil), vals...)
}

// Has reports whether key is set.
func (s State) Has(key string) bool {
	return len(s[key]) > 0
}

func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Equal compares keys and per-key value order.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || len(ov) != len(v) {
			return false
		}
		for i := range v {
			if v[i] != ov[i] {
				return false
			}
		}
	}
	return true
}

// ActiveCount counts keys that narrow the result set, so the free-text query
// and the page marker are excluded.
func (s State) ActiveCount() int {
	n := 0
	for k, v := range s {
		if k == KeyQuery || k == KeyPage {
			continue
		}
		if len(v) > 0 {
			n++
		}
	}
	return n
}

// URLValues converts the state to url.Values with repeated keys for multi filters.
func (s State) URLValues() url.Values {
	q := url.Values{}
	for k, v := range s {
		for _, item := range v {
			q.Add(k, item)
		}
	}
	return q
}

// Encode serializes the state as a query string without the leading "?".
// Keys are sorted; values keep their order within a key.
func (s State) Encode() string {
	return s.URLValues().Encode()
}

// FromValues builds a State out of url.Values, enforcing the no-empty-entry
// invariant.
func FromValues(values url.Values) State {
	s := State{}
	for k, v := range values {
		s.set(k, v)
	}
	return s
}

// Parse reads a raw query string. A leading "?" is accepted. Malformed pairs
// are skipped rather than failing the whole query.
func Parse(rawQuery string) State {
	rawQuery = strings.TrimPrefix(strings.TrimSpace(rawQuery), "?")
	values, _ := url.ParseQuery(rawQuery)
	return FromValues(values)
}

// FromMap builds a State from loosely typed initial filters handed over by a
// page: string, []string or nil values.
func FromMap(m map[string]any) State {
	s := State{}
	for k, v := range m {
		switch val := v.(type) {
		case string:
			s.set(k, []string{val})
		case []string:
			s.set(k, val)
		case []any:
			vals := make([]string, 0, len(val))
			for _, item := range val {
				if str, ok := item.(string); ok {
					vals = append(vals, str)
				}
			}
			s.set(k, vals)
		}
	}
	return s
}
