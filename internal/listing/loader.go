package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jenjangkarir/internal/metrics"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/utils"

	"go.uber.org/zap"
)

// DefaultPageSize matches the size of the server-rendered first page.
const DefaultPageSize = 10

// State of a loader.
type State int

const (
	Idle State = iota
	Loading
)

func (s State) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// Result describes what a LoadNextPage call did.
type Result int

const (
	// ResultSkipped: a fetch was in flight, there was nothing more to load,
	// or the loader is closed.
	ResultSkipped Result = iota
	ResultAppended
	ResultExhausted
	ResultFailed
	// ResultStale: the filters were reset while the fetch ran; the response
	// was dropped.
	ResultStale
)

func (r Result) String() string {
	switch r {
	case ResultAppended:
		return "appended"
	case ResultExhausted:
		return "exhausted"
	case ResultFailed:
		return "failed"
	case ResultStale:
		return "stale"
	default:
		return "skipped"
	}
}

// Fetcher loads one window of a collection. It is the data access
// collaborator of the loader.
type Fetcher[T any] func(ctx context.Context, plan query.Plan, rng query.Range) ([]T, error)

// RetryPolicy bounds how hard a single LoadNextPage tries before giving up.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type Options struct {
	PageSize int
	// Timeout applies to each fetch attempt.
	Timeout time.Duration
	Retry   RetryPolicy
	// FailureThreshold is the number of consecutive failed loads after which
	// ShouldSurfaceError reports true.
	FailureThreshold int
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Retry.MaxAttempts <= 0 {
		o.Retry.MaxAttempts = 1
	}
	if o.Retry.BaseDelay <= 0 {
		o.Retry.BaseDelay = 200 * time.Millisecond
	}
	if o.Retry.MaxDelay <= 0 {
		o.Retry.MaxDelay = 2 * time.Second
	}
	if o.FailureThreshold <= 0 {
		o.FailureThreshold = 3
	}
	return o
}

// Snapshot is a consistent copy of the loader state.
type Snapshot[T any] struct {
	Items      []T
	Page       int
	HasMore    bool
	State      State
	Generation uint64
	LastError  error
	Failures   int
}

// Loader accumulates successive pages of one listing. At most one fetch is
// in flight; Reset bumps the generation so a response started under older
// filters is discarded instead of appended.
type Loader[T any] struct {
	mu    sync.Mutex
	fetch Fetcher[T]
	opts  Options

	plan       query.Plan
	items      []T
	page       int
	hasMore    bool
	state      State
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	lastErr  error
	failures int

	wait func(ctx context.Context, d time.Duration) error
}

func NewLoader[T any](fetch Fetcher[T], opts Options) *Loader[T] {
	return &Loader[T]{
		fetch: fetch,
		opts:  opts.withDefaults(),
		wait:  sleepCtx,
	}
}

// Reset seeds the loader with the server-delivered first page for plan. The
// first page counts as merged, so the next fetch asks for page index 1.
func (l *Loader[T]) Reset(plan query.Plan, initial []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
	l.plan = plan
	l.items = append([]T(nil), initial...)
	l.page = 1
	l.hasMore = len(initial) >= l.opts.PageSize
	l.state = Idle
	l.lastErr = nil
	l.failures = 0
}

// LoadNextPage fetches and appends the next page. It does nothing while a
// fetch is in flight or once the listing is exhausted. On failure the list
// and hasMore are left untouched and the error is returned.
func (l *Loader[T]) LoadNextPage(ctx context.Context) (Result, error) {
	l.mu.Lock()
	if l.closed || l.state == Loading || !l.hasMore {
		l.mu.Unlock()
		return ResultSkipped, nil
	}
	l.state = Loading
	gen := l.generation
	plan := l.plan
	size := l.opts.PageSize
	rng := query.Range{Offset: l.page * size, Limit: size}
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	items, err := l.fetchWithRetry(fctx, plan, rng)
	cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	collection := string(plan.Collection)
	if gen != l.generation {
		metrics.ListingFetches.WithLabelValues(collection, ResultStale.String()).Inc()
		return ResultStale, nil
	}
	l.cancel = nil
	l.state = Idle

	if err != nil {
		l.lastErr = err
		l.failures++
		metrics.ListingFetches.WithLabelValues(collection, ResultFailed.String()).Inc()
		utils.L().Warn("listing fetch failed",
			zap.String("collection", collection),
			zap.Int("offset", rng.Offset),
			zap.Uint64("generation", gen),
			zap.Int("consecutive_failures", l.failures),
			zap.Error(err),
		)
		return ResultFailed, err
	}
	l.lastErr = nil
	l.failures = 0

	if len(items) == 0 {
		l.hasMore = false
		metrics.ListingFetches.WithLabelValues(collection, ResultExhausted.String()).Inc()
		return ResultExhausted, nil
	}
	l.items = append(l.items, items...)
	l.page++
	l.hasMore = len(items) == size
	metrics.ListingFetches.WithLabelValues(collection, ResultAppended.String()).Inc()
	return ResultAppended, nil
}

func (l *Loader[T]) fetchWithRetry(ctx context.Context, plan query.Plan, rng query.Range) ([]T, error) {
	policy := l.opts.Retry
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		actx, cancel := ctx, context.CancelFunc(func() {})
		if l.opts.Timeout > 0 {
			actx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		}
		items, err := l.fetch(actx, plan, rng)
		cancel()
		if err == nil {
			return items, nil
		}
		lastErr = err

		// Reset or Close cancelled us; retrying is pointless.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == policy.MaxAttempts-1 {
			break
		}

		metrics.ListingFetchRetries.WithLabelValues(string(plan.Collection)).Inc()
		delay := policy.BaseDelay * time.Duration(1<<attempt)
		if delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
		if err := l.wait(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("ambil %s offset %d gagal setelah %d percobaan: %w",
		plan.Collection, rng.Offset, policy.MaxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CanLoad reports whether LoadNextPage would issue a fetch right now.
func (l *Loader[T]) CanLoad() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && l.state == Idle && l.hasMore
}

func (l *Loader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

func (l *Loader[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Plan returns the plan the next fetch will use.
func (l *Loader[T]) Plan() query.Plan {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.plan
}

func (l *Loader[T]) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// ShouldSurfaceError is true once failures have piled up past the
// threshold; isolated failures stay silent.
func (l *Loader[T]) ShouldSurfaceError() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures >= l.opts.FailureThreshold
}

func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{
		Items:      append([]T(nil), l.items...),
		Page:       l.page,
		HasMore:    l.hasMore,
		State:      l.state,
		Generation: l.generation,
		LastError:  l.lastErr,
		Failures:   l.failures,
	}
}

// Close cancels an in-flight fetch and turns further loads into no-ops.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.state = Idle
}
