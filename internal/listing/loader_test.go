package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jenjangkarir/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySource serves a fixed slice window by window.
type memorySource struct {
	mu    sync.Mutex
	data  []int
	err   error
	calls []query.Range
}

func (m *memorySource) fetch(_ context.Context, _ query.Plan, rng query.Range) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, rng)
	if m.err != nil {
		return nil, m.err
	}
	if rng.Offset >= len(m.data) {
		return []int{}, nil
	}
	end := rng.Offset + rng.Limit
	if end > len(m.data) {
		end = len(m.data)
	}
	return append([]int(nil), m.data[rng.Offset:end]...), nil
}

func (m *memorySource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func noWait(context.Context, time.Duration) error { return nil }

var jobsPlan = query.Plan{Collection: query.Jobs}

func TestResetSeedsFirstPage(t *testing.T) {
	src := &memorySource{data: seq(25)}
	l := NewLoader(src.fetch, Options{PageSize: 10})

	l.Reset(jobsPlan, seq(10))
	snap := l.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.True(t, snap.HasMore)
	assert.Equal(t, Idle, snap.State)

	l.Reset(jobsPlan, seq(4))
	assert.False(t, l.HasMore(), "a short first page means nothing more to load")
}

func TestLoadNextPageAppendsUntilShortPage(t *testing.T) {
	src := &memorySource{data: seq(25)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])

	res, err := l.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultAppended, res)
	assert.True(t, l.HasMore())

	res, err = l.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultAppended, res)
	assert.False(t, l.HasMore())

	snap := l.Snapshot()
	assert.Equal(t, seq(25), snap.Items)
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, []query.Range{{Offset: 10, Limit: 10}, {Offset: 20, Limit: 10}}, src.calls)
}

func TestHasMoreNeverComesBack(t *testing.T) {
	src := &memorySource{data: seq(20)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])

	res, _ := l.LoadNextPage(context.Background())
	assert.Equal(t, ResultAppended, res)
	assert.True(t, l.HasMore(), "a full page keeps hasMore")

	res, _ = l.LoadNextPage(context.Background())
	assert.Equal(t, ResultExhausted, res)
	assert.False(t, l.HasMore())

	src.mu.Lock()
	src.data = seq(100)
	src.mu.Unlock()

	for i := 0; i < 5; i++ {
		res, err := l.LoadNextPage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ResultSkipped, res)
		assert.False(t, l.HasMore())
	}
	assert.Equal(t, 2, src.callCount())
}

func TestConcurrentLoadIssuesOneFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	fetch := func(ctx context.Context, _ query.Plan, rng query.Range) ([]int, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return seq(rng.Limit), nil
	}
	l := NewLoader(fetch, Options{PageSize: 5})
	l.Reset(jobsPlan, seq(5))

	done := make(chan Result, 1)
	go func() {
		res, _ := l.LoadNextPage(context.Background())
		done <- res
	}()
	<-started

	assert.Equal(t, Loading, l.State())
	assert.False(t, l.CanLoad())
	res, err := l.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, res)

	close(release)
	assert.Equal(t, ResultAppended, <-done)
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestFailureLeavesStateUntouched(t *testing.T) {
	src := &memorySource{data: seq(30), err: errors.New("connection reset")}
	l := NewLoader(src.fetch, Options{
		PageSize:         10,
		Retry:            RetryPolicy{MaxAttempts: 3},
		FailureThreshold: 2,
	})
	l.wait = noWait
	l.Reset(jobsPlan, src.data[:10])

	res, err := l.LoadNextPage(context.Background())
	assert.Equal(t, ResultFailed, res)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 3, src.callCount(), "every attempt hits the source")

	snap := l.Snapshot()
	assert.Len(t, snap.Items, 10)
	assert.Equal(t, 1, snap.Page)
	assert.True(t, snap.HasMore)
	assert.Equal(t, Idle, snap.State)
	assert.False(t, l.ShouldSurfaceError())

	_, _ = l.LoadNextPage(context.Background())
	assert.True(t, l.ShouldSurfaceError())

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()
	res, err = l.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultAppended, res)
	assert.NoError(t, l.LastError())
	assert.False(t, l.ShouldSurfaceError())
}

func TestRetryRecoversWithinOneLoad(t *testing.T) {
	attempts := 0
	fetch := func(ctx context.Context, _ query.Plan, rng query.Range) ([]int, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("timeout")
		}
		return seq(3), nil
	}
	l := NewLoader(fetch, Options{PageSize: 10, Retry: RetryPolicy{MaxAttempts: 3}})
	var delays []time.Duration
	l.wait = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	l.Reset(jobsPlan, seq(10))

	res, err := l.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultAppended, res)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{200 * time.Millisecond}, delays)
	assert.False(t, l.HasMore())
}

func TestResetDiscardsInFlightResponse(t *testing.T) {
	started := make(chan struct{}, 1)
	fetch := func(ctx context.Context, _ query.Plan, rng query.Range) ([]int, error) {
		started <- struct{}{}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	l := NewLoader(fetch, Options{PageSize: 2})
	l.Reset(jobsPlan, []int{1, 2})

	done := make(chan Result, 1)
	go func() {
		res, _ := l.LoadNextPage(context.Background())
		done <- res
	}()
	<-started

	companies := query.Plan{Collection: query.Companies}
	l.Reset(companies, []int{7, 8})

	assert.Equal(t, ResultStale, <-done)
	snap := l.Snapshot()
	assert.Equal(t, []int{7, 8}, snap.Items)
	assert.Equal(t, Idle, snap.State)
	assert.NoError(t, snap.LastError)
	assert.Equal(t, query.Companies, l.Plan().Collection)
}

func TestTimeoutAppliesPerAttempt(t *testing.T) {
	fetch := func(ctx context.Context, _ query.Plan, _ query.Range) ([]int, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	l := NewLoader(fetch, Options{PageSize: 1, Timeout: 10 * time.Millisecond})
	l.Reset(jobsPlan, []int{1})

	res, err := l.LoadNextPage(context.Background())
	assert.Equal(t, ResultFailed, res)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, l.HasMore())
}

func TestCloseStopsLoading(t *testing.T) {
	src := &memorySource{data: seq(30)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])
	l.Close()
	l.Close()

	res, err := l.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, res)
	assert.Zero(t, src.callCount())
}
