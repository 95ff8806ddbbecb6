package filter

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FilterType selects which listing a provider drives.
type FilterType string

const (
	TypeJob     FilterType = "job"
	TypeCompany FilterType = "company"
	TypeArticle FilterType = "article"
)

// ParseFilterType accepts "job", "company" or "article" (plural forms too).
func ParseFilterType(raw string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "job", "jobs":
		return TypeJob, nil
	case "company", "companies":
		return TypeCompany, nil
	case "article", "articles":
		return TypeArticle, nil
	}
	return "", fmt.Errorf("filter type %q tidak dikenal", raw)
}

// Navigator writes an encoded filter query to wherever the URL lives.
type Navigator interface {
	Navigate(ctx context.Context, rawQuery string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, rawQuery string) error

func (f NavigatorFunc) Navigate(ctx context.Context, rawQuery string) error {
	return f(ctx, rawQuery)
}

type listener func(State)

// Store holds the in-memory filter state of one mounted listing and keeps it
// in step with the URL: store to URL on apply/reset, URL to store on
// SyncFromURL.
type Store struct {
	mu         sync.Mutex
	filterType FilterType
	state      State
	dirty      bool
	nav        Navigator

	// mounted flips on the first SyncFromURL, which is ignored so the
	// initial filters handed to the provider are not clobbered.
	mounted bool
	// lastWritten is the query this store navigated to most recently; an
	// incoming sync carrying it is our own echo and is skipped.
	lastWritten string
	pending     bool

	nextID   int
	onChange map[int]listener
	onApply  map[int]listener
}

// NewProvider mounts a store for filterType seeded with initial filters. A
// nil navigator makes apply/reset purely in-memory.
func NewProvider(filterType FilterType, initial State, nav Navigator) *Store {
	st := State{}
	for k, v := range initial {
		st.set(k, v)
	}
	return &Store{
		filterType: filterType,
		state:      st,
		nav:        nav,
		onChange:   map[int]listener{},
		onApply:    map[int]listener{},
	}
}

func (s *Store) FilterType() FilterType {
	return s.filterType
}

// Filters returns a copy of the current state.
func (s *Store) Filters() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Store) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveCount()
}

// SetFilter replaces key with values, or removes it when no non-blank value
// is given. The URL is left alone until ApplyFilters.
func (s *Store) SetFilter(key string, values ...string) {
	s.mu.Lock()
	s.state.set(key, values)
	s.dirty = true
	snap := s.state.Clone()
	subs := s.listeners(s.onChange)
	s.mu.Unlock()

	notify(subs, snap)
}

// SetMultipleFilters applies SetFilter semantics for every entry as a single
// transition; listeners see one change.
func (s *Store) SetMultipleFilters(partial map[string][]string) {
	if len(partial) == 0 {
		return
	}
	s.mu.Lock()
	for k, v := range partial {
		s.state.set(k, v)
	}
	s.dirty = true
	snap := s.state.Clone()
	subs := s.listeners(s.onChange)
	s.mu.Unlock()

	notify(subs, snap)
}

func (s *Store) RemoveFilter(key string) {
	s.SetFilter(key)
}

// ResetFilters clears everything except the free-text query and writes the
// result to the URL right away.
func (s *Store) ResetFilters(ctx context.Context) error {
	return s.commit(ctx, func(cur State) State {
		next := State{}
		if q := cur.Values(KeyQuery); len(q) > 0 {
			next.set(KeyQuery, q)
		}
		return next
	})
}

// ApplyFilters serializes the state to the URL and clears the dirty flag.
func (s *Store) ApplyFilters(ctx context.Context) error {
	return s.commit(ctx, nil)
}

// commit writes the state to the URL. prepare, when set, replaces the state
// in the same critical section that encodes it. A change made while the
// navigator runs keeps the store dirty; listeners get the committed state.
func (s *Store) commit(ctx context.Context, prepare func(State) State) error {
	s.mu.Lock()
	if prepare != nil {
		s.state = prepare(s.state)
		s.dirty = true
	}
	committed := s.state.Clone()
	encoded := committed.Encode()
	nav := s.nav
	s.mu.Unlock()

	if nav != nil {
		if err := nav.Navigate(ctx, encoded); err != nil {
			return fmt.Errorf("navigasi filter gagal: %w", err)
		}
	}

	s.mu.Lock()
	s.dirty = s.state.Encode() != encoded
	s.lastWritten = encoded
	s.pending = true
	change := s.listeners(s.onChange)
	apply := s.listeners(s.onApply)
	s.mu.Unlock()

	notify(change, committed)
	notify(apply, committed)
	return nil
}

// SyncFromURL replaces the state with the one encoded in rawQuery, e.g. after
// browser back/forward. It returns false when the call was swallowed by the
// first-mount guard or was the echo of our own navigation.
func (s *Store) SyncFromURL(rawQuery string) bool {
	incoming := Parse(rawQuery)

	s.mu.Lock()
	if !s.mounted {
		s.mounted = true
		s.mu.Unlock()
		return false
	}
	if s.pending && incoming.Encode() == s.lastWritten {
		s.pending = false
		s.mu.Unlock()
		return false
	}
	s.pending = false
	s.state = incoming
	s.dirty = false
	snap := s.state.Clone()
	change := s.listeners(s.onChange)
	apply := s.listeners(s.onApply)
	s.mu.Unlock()

	notify(change, snap)
	notify(apply, snap)
	return true
}

// OnChange registers fn for every state transition. The returned func
// unsubscribes.
func (s *Store) OnChange(fn func(State)) func() {
	return s.subscribe(s.onChange, fn)
}

// OnApply registers fn for transitions that reach the URL (apply, reset and
// incoming URL syncs).
func (s *Store) OnApply(fn func(State)) func() {
	return s.subscribe(s.onApply, fn)
}

func (s *Store) subscribe(set map[int]listener, fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	set[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(set, id)
			s.mu.Unlock()
		})
	}
}

// listeners copies a listener set; caller holds s.mu.
func (s *Store) listeners(set map[int]listener) []listener {
	out := make([]listener, 0, len(set))
	for _, fn := range set {
		out = append(out, fn)
	}
	return out
}

func notify(subs []listener, st State) {
	for _, fn := range subs {
		fn(st.Clone())
	}
}
