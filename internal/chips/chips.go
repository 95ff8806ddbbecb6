package chips

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"jenjangkarir/internal/filter"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var defaultLabels []byte

// Catalog holds label templates per filter key and display names for known
// values. Templates use "{value}" as the placeholder.
type Catalog struct {
	Templates map[string]string            `yaml:"templates"`
	Values    map[string]map[string]string `yaml:"values"`
}

// LoadCatalog parses a YAML label catalog.
func LoadCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("label chip tidak valid: %w", err)
	}
	if c.Templates == nil {
		c.Templates = map[string]string{}
	}
	if c.Values == nil {
		c.Values = map[string]map[string]string{}
	}
	return &c, nil
}

// DefaultCatalog returns the embedded Indonesian catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultLabels)
	if err != nil {
		panic(err)
	}
	return c
}

// Label renders the human-readable text of one chip.
func (c *Catalog) Label(key, value string) string {
	display := value
	if names, ok := c.Values[key]; ok {
		if name, ok := names[value]; ok {
			display = name
		}
	}
	tmpl, ok := c.Templates[key]
	if !ok {
		tmpl = key + ": {value}"
	}
	return strings.ReplaceAll(tmpl, "{value}", display)
}

// Chip is one removable filter value.
type Chip struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// View is everything the chip bar needs.
type View struct {
	Chips       []Chip `json:"chips"`
	ActiveCount int    `json:"active_filter_count"`
	ShowReset   bool   `json:"show_reset"`
}

// hidden keys are shown elsewhere (search box) or not at all.
var hidden = map[string]bool{
	filter.KeyQuery: true,
	filter.KeyPage:  true,
}

// Build lists one chip per scalar filter and one per element of a
// multi-valued filter, in key order.
func Build(st filter.State, c *Catalog) View {
	keys := make([]string, 0, len(st))
	for k := range st {
		if !hidden[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := View{Chips: []Chip{}}
	for _, k := range keys {
		for _, v := range st[k] {
			out.Chips = append(out.Chips, Chip{Key: k, Value: v, Label: c.Label(k, v)})
		}
	}
	out.ActiveCount = st.ActiveCount()
	out.ShowReset = out.ActiveCount > 0
	return out
}

// without drops the first occurrence of value.
func without(values []string, value string) []string {
	out := make([]string, 0, len(values))
	removed := false
	for _, v := range values {
		if !removed && v == value {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

// removeFrom returns the key and the values it should keep once chip is
// gone. No values left means the key is dropped.
func removeFrom(st filter.State, chip Chip) (string, []string) {
	if !filter.IsMulti(chip.Key) {
		return chip.Key, nil
	}
	return chip.Key, without(st.Values(chip.Key), chip.Value)
}

// Remove drops a chip through the store and applies the result.
func Remove(ctx context.Context, s *filter.Store, chip Chip) error {
	key, rest := removeFrom(s.Filters(), chip)
	s.SetFilter(key, rest...)
	return s.ApplyFilters(ctx)
}

// ResetAll clears every filter except the search. ResetFilters already
// writes the URL, so there is no separate apply.
func ResetAll(ctx context.Context, s *filter.Store) error {
	return s.ResetFilters(ctx)
}

// RemoveFromQuery is the store-less path: it rewrites the URL query
// directly and returns the query to navigate to.
func RemoveFromQuery(rawQuery string, chip Chip) string {
	st := filter.Parse(rawQuery)
	key, rest := removeFrom(st, chip)
	delete(st, key)
	if len(rest) > 0 {
		st[key] = rest
	}
	return st.Encode()
}

// ResetQuery keeps only the search of rawQuery.
func ResetQuery(rawQuery string) string {
	st := filter.Parse(rawQuery)
	next := filter.State{}
	if q := st.Values(filter.KeyQuery); len(q) > 0 {
		next[filter.KeyQuery] = q
	}
	return next.Encode()
}

// Renderer serves the chip bar in either mode: through the filter store
// mounted on ctx, or, with no provider around, straight off the URL query.
type Renderer struct {
	Catalog *Catalog
}

func NewRenderer(c *Catalog) *Renderer {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Renderer{Catalog: c}
}

// Render builds the view from the mounted store when there is one and from
// rawQuery otherwise.
func (r *Renderer) Render(ctx context.Context, rawQuery string) View {
	if s, ok := filter.FromContext(ctx); ok {
		return Build(s.Filters(), r.Catalog)
	}
	return Build(filter.Parse(rawQuery), r.Catalog)
}

// Remove drops chip. With a store on ctx the store navigates and redirect
// is empty; without one the caller navigates to redirect itself.
func (r *Renderer) Remove(ctx context.Context, rawQuery string, chip Chip) (redirect string, err error) {
	if s, ok := filter.FromContext(ctx); ok {
		return "", Remove(ctx, s, chip)
	}
	return RemoveFromQuery(rawQuery, chip), nil
}

// Reset is Remove for every chip at once.
func (r *Renderer) Reset(ctx context.Context, rawQuery string) (redirect string, err error) {
	if s, ok := filter.FromContext(ctx); ok {
		return "", ResetAll(ctx, s)
	}
	return ResetQuery(rawQuery), nil
}
