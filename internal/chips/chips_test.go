package chips

import (
	"context"
	"errors"
	"testing"

	"jenjangkarir/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNav struct {
	queries []string
	err     error
}

func (r *recordingNav) Navigate(_ context.Context, rawQuery string) error {
	if r.err != nil {
		return r.err
	}
	r.queries = append(r.queries, rawQuery)
	return nil
}

func TestDefaultCatalogLabels(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, "Lokasi: Jakarta", c.Label("location", "Jakarta"))
	assert.Equal(t, "Tipe: Penuh Waktu", c.Label("job_type", "full-time"))
	assert.Equal(t, "Gaji min: Rp5 jt", c.Label("salary_min", "5"))
	assert.Equal(t, "Urutan: Terlama", c.Label("sort", "oldest"))
	assert.Equal(t, "benefit: asuransi", c.Label("benefit", "asuransi"))
}

func TestLoadCatalogRejectsGarbage(t *testing.T) {
	_, err := LoadCatalog([]byte("templates: [unclosed"))
	assert.Error(t, err)
}

func TestBuildOneChipPerValue(t *testing.T) {
	st := filter.Parse("q=golang&location=Jakarta&location=Bandung&salary_min=5&page=2")
	v := Build(st, DefaultCatalog())

	require.Len(t, v.Chips, 3)
	assert.Equal(t, Chip{Key: "location", Value: "Jakarta", Label: "Lokasi: Jakarta"}, v.Chips[0])
	assert.Equal(t, "Bandung", v.Chips[1].Value)
	assert.Equal(t, "salary_min", v.Chips[2].Key)
	assert.Equal(t, 2, v.ActiveCount)
	assert.True(t, v.ShowReset)
}

func TestBuildOnlySearchHidesReset(t *testing.T) {
	v := Build(filter.Parse("q=designer"), DefaultCatalog())
	assert.Empty(t, v.Chips)
	assert.NotNil(t, v.Chips)
	assert.False(t, v.ShowReset)
}

func TestRemoveSingleElementThenLast(t *testing.T) {
	nav := &recordingNav{}
	s := filter.NewProvider(filter.TypeJob, filter.State{
		"location": {"Jakarta", "Bandung", "Bali"},
	}, nav)
	ctx := context.Background()

	require.NoError(t, Remove(ctx, s, Chip{Key: "location", Value: "Bandung"}))
	assert.Equal(t, []string{"Jakarta", "Bali"}, s.Filters().Values("location"))

	require.NoError(t, Remove(ctx, s, Chip{Key: "location", Value: "Jakarta"}))
	require.NoError(t, Remove(ctx, s, Chip{Key: "location", Value: "Bali"}))
	assert.False(t, s.Filters().Has("location"))
	_, present := s.Filters()["location"]
	assert.False(t, present, "the key is gone, not left holding an empty list")

	assert.Equal(t, []string{
		"location=Jakarta&location=Bali",
		"location=Bali",
		"",
	}, nav.queries)
}

func TestRemoveScalarDropsKey(t *testing.T) {
	s := filter.NewProvider(filter.TypeJob, filter.Parse("salary_min=5&q=go"), nil)
	require.NoError(t, Remove(context.Background(), s, Chip{Key: "salary_min", Value: "5"}))
	assert.Equal(t, "q=go", s.Filters().Encode())
	assert.False(t, s.IsDirty())
}

func TestRemoveSurfacesNavigationError(t *testing.T) {
	nav := &recordingNav{err: errors.New("router gone")}
	s := filter.NewProvider(filter.TypeJob, filter.Parse("location=Bali"), nav)

	err := Remove(context.Background(), s, Chip{Key: "location", Value: "Bali"})
	require.Error(t, err)
	assert.True(t, s.IsDirty())
}

func TestResetAllKeepsSearch(t *testing.T) {
	nav := &recordingNav{}
	s := filter.NewProvider(filter.TypeJob, filter.Parse("q=data&location=Bali&sort=oldest"), nav)
	require.NoError(t, ResetAll(context.Background(), s))
	assert.Equal(t, []string{"q=data"}, nav.queries)
}

func TestQueryFallback(t *testing.T) {
	raw := "?location=Jakarta&location=Bandung&location=Bali&q=go"
	next := RemoveFromQuery(raw, Chip{Key: "location", Value: "Bandung"})
	assert.Equal(t, "location=Jakarta&location=Bali&q=go", next)

	next = RemoveFromQuery("location=Bali", Chip{Key: "location", Value: "Bali"})
	assert.Equal(t, "", next)

	assert.Equal(t, "q=go", ResetQuery(raw))
	assert.Equal(t, "", ResetQuery("location=Bali"))
}

func TestRendererPicksMode(t *testing.T) {
	r := NewRenderer(nil)
	raw := "location=Bali&job_type=remote"

	// no provider: the URL is the source of truth
	v := r.Render(context.Background(), raw)
	assert.Len(t, v.Chips, 2)
	redirect, err := r.Remove(context.Background(), raw, Chip{Key: "job_type", Value: "remote"})
	require.NoError(t, err)
	assert.Equal(t, "location=Bali", redirect)

	nav := &recordingNav{}
	s := filter.NewProvider(filter.TypeJob, filter.Parse("location=Medan"), nav)
	ctx := filter.WithStore(context.Background(), s)

	v = r.Render(ctx, raw)
	require.Len(t, v.Chips, 1)
	assert.Equal(t, "Medan", v.Chips[0].Value)

	redirect, err = r.Reset(ctx, raw)
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Equal(t, []string{""}, nav.queries)
}
