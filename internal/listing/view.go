package listing

import (
	"context"
	"errors"
	"sync"
	"time"

	"jenjangkarir/internal/filter"
	"jenjangkarir/internal/metrics"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrViewNotFound is returned for unknown or evicted view ids.
var ErrViewNotFound = errors.New("listing: view tidak ditemukan")

// View is one mounted listing: a filter store, its loader and the scroll
// trigger, tied together so that every applied filter change reloads the
// first page.
type View struct {
	ID         string
	Collection query.Collection
	Store      *filter.Store
	Loader     *Loader[any]
	Events     *ScrollEvents
	Trigger    *Trigger

	ctx    context.Context
	cancel context.CancelFunc
	unsub  func()

	mu       sync.Mutex
	url      string
	firstErr error
	lastSeen time.Time

	// refreshGen orders first-page reloads; only the newest may seed the
	// loader.
	refreshGen    uint64
	refreshCancel context.CancelFunc
}

// Query is the encoded filter query the view last navigated to.
func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

// Err reports the error of the most recent first-page load, if any.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.firstErr
}

func (v *View) navigate(_ context.Context, rawQuery string) error {
	v.mu.Lock()
	v.url = rawQuery
	v.mu.Unlock()
	return nil
}

// refresh loads the first page for st and resets the loader with it. A newer
// refresh cancels this one, and a response that arrives after it is dropped.
func (v *View) refresh(ctx context.Context, st filter.State) error {
	plan := query.Translate(v.Collection, st)
	rng := query.Range{Offset: 0, Limit: v.Loader.opts.PageSize}
	rctx, cancel := context.WithCancel(ctx)

	v.mu.Lock()
	if v.refreshCancel != nil {
		v.refreshCancel()
	}
	v.refreshGen++
	gen := v.refreshGen
	v.refreshCancel = cancel
	v.mu.Unlock()

	items, err := v.Loader.fetchWithRetry(rctx, plan, rng)
	cancel()

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.refreshGen {
		metrics.ListingFetches.WithLabelValues(string(v.Collection), ResultStale.String()).Inc()
		return nil
	}
	v.refreshCancel = nil
	v.firstErr = err

	if err != nil {
		utils.L().Warn("listing first page failed",
			zap.String("view_id", v.ID),
			zap.String("collection", string(v.Collection)),
			zap.Uint64("refresh", gen),
			zap.Error(err),
		)
		v.Loader.Reset(plan, nil)
		return err
	}
	v.Loader.Reset(plan, items)
	return nil
}

// SyncFromURL forwards a client-side URL change (back/forward) to the store.
func (v *View) SyncFromURL(rawQuery string) bool {
	changed := v.Store.SyncFromURL(rawQuery)
	if changed {
		v.mu.Lock()
		v.url = filter.Parse(rawQuery).Encode()
		v.mu.Unlock()
	}
	return changed
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

func (v *View) close() {
	v.unsub()
	v.Trigger.Close()
	v.Loader.Close()
	v.cancel()
}

// ViewSnapshot is the JSON shape of a view.
type ViewSnapshot struct {
	ID                string       `json:"view_id"`
	FilterType        string       `json:"filter_type"`
	Query             string       `json:"query"`
	Filters           filter.State `json:"filters"`
	ActiveFilterCount int          `json:"active_filter_count"`
	Dirty             bool         `json:"dirty"`
	Items             []any        `json:"items"`
	Page              int          `json:"page"`
	HasMore           bool         `json:"has_more"`
	Loading           bool         `json:"loading"`
	Error             string       `json:"error,omitempty"`
}

func (v *View) Snapshot() ViewSnapshot {
	snap := v.Loader.Snapshot()
	out := ViewSnapshot{
		ID:                v.ID,
		FilterType:        string(v.Store.FilterType()),
		Query:             v.Query(),
		Filters:           v.Store.Filters(),
		ActiveFilterCount: v.Store.ActiveFilterCount(),
		Dirty:             v.Store.IsDirty(),
		Items:             snap.Items,
		Page:              snap.Page,
		HasMore:           snap.HasMore,
		Loading:           snap.State == Loading,
	}
	if out.Items == nil {
		out.Items = []any{}
	}
	if err := v.Err(); err != nil {
		out.Error = "gagal memuat daftar"
	} else if v.Loader.ShouldSurfaceError() {
		out.Error = "gagal memuat halaman berikutnya"
	}
	return out
}

// Registry owns the mounted views of the process.
type Registry struct {
	fetch   Fetcher[any]
	opts    Options
	trigger TriggerOptions
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*View
}

func NewRegistry(fetch Fetcher[any], opts Options, trigger TriggerOptions) *Registry {
	return &Registry{
		fetch:   fetch,
		opts:    opts.withDefaults(),
		trigger: trigger,
		now:     time.Now,
		views:   map[string]*View{},
	}
}

// Mount creates a view seeded with initial and loads its first page. The
// view keeps running after ctx ends; call Unmount or let EvictIdle reap it.
func (r *Registry) Mount(ctx context.Context, ft filter.FilterType, initial filter.State) (*View, error) {
	vctx, cancel := context.WithCancel(context.Background())
	v := &View{
		ID:         uuid.NewString(),
		Collection: query.CollectionFor(ft),
		Events:     NewScrollEvents(),
		ctx:        vctx,
		cancel:     cancel,
		url:        initial.Encode(),
		lastSeen:   r.now(),
	}
	v.Loader = NewLoader(r.fetch, r.opts)
	v.Store = filter.NewProvider(ft, initial, filter.NavigatorFunc(v.navigate))
	v.Trigger = NewTrigger(vctx, v.Loader, v.Events, r.trigger)

	// The client's first URL sync repeats the initial filters.
	v.Store.SyncFromURL(v.url)

	// Listeners run synchronously inside ApplyFilters/ResetFilters/SyncFromURL,
	// so the caller's request sees the reloaded page when it returns.
	v.unsub = v.Store.OnApply(func(st filter.State) {
		_ = v.refresh(v.ctx, st)
	})

	if err := v.refresh(ctx, v.Store.Filters()); err != nil {
		v.close()
		return nil, err
	}

	r.mu.Lock()
	r.views[v.ID] = v
	n := len(r.views)
	r.mu.Unlock()
	metrics.ListingViewsActive.Set(float64(n))
	return v, nil
}

// Get returns a live view and marks it as seen.
func (r *Registry) Get(id string) (*View, error) {
	r.mu.Lock()
	v, ok := r.views[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrViewNotFound
	}
	v.touch(r.now())
	return v, nil
}

func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	n := len(r.views)
	r.mu.Unlock()
	if !ok {
		return ErrViewNotFound
	}
	v.close()
	metrics.ListingViewsActive.Set(float64(n))
	return nil
}

// EvictIdle unmounts views not seen for ttl and returns how many went.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	n := len(r.views)
	r.mu.Unlock()

	for _, v := range stale {
		v.close()
	}
	metrics.ListingViewsActive.Set(float64(n))
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// CloseAll unmounts everything; used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = map[string]*View{}
	r.mu.Unlock()

	for _, v := range views {
		v.close()
	}
	metrics.ListingViewsActive.Set(0)
}
