package filter

import (
	"context"
	"errors"
)

// ErrOutsideProvider is the panic value of MustFromContext when no store was
// mounted on the context. Reaching it is a wiring bug, not a runtime state.
var ErrOutsideProvider = errors.New("filter: store dipakai di luar provider")

type ctxKey struct{}

// WithStore makes s reachable from ctx and everything derived from it.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext is the optional accessor: ok is false outside a provider.
func FromContext(ctx context.Context) (*Store, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(ctxKey{}).(*Store)
	return s, ok && s != nil
}

// MustFromContext is the strict accessor and panics outside a provider.
func MustFromContext(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrOutsideProvider)
	}
	return s
}
