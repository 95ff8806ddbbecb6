package listing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportRemaining(t *testing.T) {
	v := Viewport{ScrollTop: 1200, ViewportHeight: 800, DocumentHeight: 2400}
	assert.Equal(t, 400.0, v.Remaining())
}

func TestPassiveScrollLoadsNearBottom(t *testing.T) {
	src := &memorySource{data: seq(40)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])

	events := NewScrollEvents()
	tr := NewTrigger(context.Background(), l, events, TriggerOptions{Threshold: 500})
	defer tr.Close()

	events.Publish(Viewport{ScrollTop: 0, ViewportHeight: 800, DocumentHeight: 3000})
	assert.Zero(t, src.callCount(), "far from the bottom")

	events.Publish(Viewport{ScrollTop: 1800, ViewportHeight: 800, DocumentHeight: 3000})
	assert.Equal(t, 1, src.callCount())
	assert.Len(t, l.Snapshot().Items, 20)
}

func TestPassiveScrollIsThrottled(t *testing.T) {
	src := &memorySource{data: seq(100)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])

	events := NewScrollEvents()
	tr := NewTrigger(context.Background(), l, events, TriggerOptions{Every: time.Hour})
	defer tr.Close()

	nearBottom := Viewport{ScrollTop: 2900, ViewportHeight: 800, DocumentHeight: 4000}
	for i := 0; i < 10; i++ {
		events.Publish(nearBottom)
	}
	assert.Equal(t, 1, src.callCount())
}

func TestLoadMoreDisabledWhenExhausted(t *testing.T) {
	src := &memorySource{data: seq(15)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])
	tr := NewTrigger(context.Background(), l, nil, TriggerOptions{})

	assert.True(t, tr.CanLoadMore())
	res, err := tr.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultAppended, res)

	assert.False(t, tr.CanLoadMore())
	res, err = tr.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, res)
	assert.Equal(t, 1, src.callCount())
}

func TestCloseRemovesListener(t *testing.T) {
	src := &memorySource{data: seq(40)}
	l := NewLoader(src.fetch, Options{PageSize: 10})
	l.Reset(jobsPlan, src.data[:10])

	events := NewScrollEvents()
	tr := NewTrigger(context.Background(), l, events, TriggerOptions{})
	require.Equal(t, 1, events.Len())

	tr.Close()
	tr.Close()
	assert.Equal(t, 0, events.Len())

	events.Publish(Viewport{ScrollTop: 3000, ViewportHeight: 800, DocumentHeight: 3000})
	assert.Zero(t, src.callCount())
}
