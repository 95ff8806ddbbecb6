package listing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultScrollThreshold is the remaining distance (px) to the bottom of the
// document below which a passive load starts.
const DefaultScrollThreshold = 500

// Viewport is what the client reports on scroll.
type Viewport struct {
	ScrollTop      float64 `json:"scroll_top"`
	ViewportHeight float64 `json:"viewport_height"`
	DocumentHeight float64 `json:"document_height"`
}

// Remaining is the distance left to the bottom of the document.
func (v Viewport) Remaining() float64 {
	return v.DocumentHeight - (v.ScrollTop + v.ViewportHeight)
}

// EventSource delivers scroll events to subscribers.
type EventSource interface {
	Subscribe(fn func(Viewport)) (unsubscribe func())
}

// ScrollEvents is an in-process EventSource for one mounted view.
type ScrollEvents struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Viewport)
}

func NewScrollEvents() *ScrollEvents {
	return &ScrollEvents{subs: map[int]func(Viewport){}}
}

func (e *ScrollEvents) Subscribe(fn func(Viewport)) func() {
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Publish calls every subscriber synchronously.
func (e *ScrollEvents) Publish(v Viewport) {
	e.mu.Lock()
	subs := make([]func(Viewport), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Len reports the number of live subscribers.
func (e *ScrollEvents) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

// Pager is the part of a Loader the trigger drives.
type Pager interface {
	LoadNextPage(ctx context.Context) (Result, error)
	CanLoad() bool
}

type TriggerOptions struct {
	Threshold float64
	// Every is the minimum spacing between passive loads started by
	// scrolling. Zero disables throttling.
	Every time.Duration
}

// Trigger decides when a Pager loads its next page: passively from scroll
// events or actively from a "load more" control.
type Trigger struct {
	ctx         context.Context
	pager       Pager
	threshold   float64
	limiter     *rate.Limiter
	unsubscribe func()
	once        sync.Once
}

// NewTrigger subscribes to src. Passive loads run under ctx, which should
// live as long as the view.
func NewTrigger(ctx context.Context, pager Pager, src EventSource, opts TriggerOptions) *Trigger {
	t := &Trigger{
		ctx:       ctx,
		pager:     pager,
		threshold: opts.Threshold,
	}
	if t.threshold <= 0 {
		t.threshold = DefaultScrollThreshold
	}
	if opts.Every > 0 {
		t.limiter = rate.NewLimiter(rate.Every(opts.Every), 1)
	}
	if src != nil {
		t.unsubscribe = src.Subscribe(t.onScroll)
	}
	return t
}

func (t *Trigger) onScroll(v Viewport) {
	if v.Remaining() >= t.threshold {
		return
	}
	if !t.pager.CanLoad() {
		return
	}
	if t.limiter != nil && !t.limiter.Allow() {
		return
	}
	// Passive loads fail silently; the loader already logged and counted it.
	_, _ = t.pager.LoadNextPage(t.ctx)
}

// LoadMore is the explicit control. It is a no-op while disabled.
func (t *Trigger) LoadMore(ctx context.Context) (Result, error) {
	if !t.CanLoadMore() {
		return ResultSkipped, nil
	}
	return t.pager.LoadNextPage(ctx)
}

// CanLoadMore is false while a fetch is in flight or nothing is left.
func (t *Trigger) CanLoadMore() bool {
	return t.pager.CanLoad()
}

// Close detaches the scroll listener. Safe to call more than once.
func (t *Trigger) Close() {
	t.once.Do(func() {
		if t.unsubscribe != nil {
			t.unsubscribe()
		}
	})
}
