package services

import (
	"context"
	"fmt"

	"jenjangkarir/internal/cache"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/filter"
	"jenjangkarir/internal/listing"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/utils"

	"go.uber.org/zap"
)

// ListingSource is the data access side of the public listings.
type ListingSource interface {
	FetchJobs(ctx context.Context, plan query.Plan, rng query.Range) ([]models.Job, error)
	FetchCompanies(ctx context.Context, plan query.Plan, rng query.Range) ([]models.Company, error)
	FetchArticles(ctx context.Context, plan query.Plan, rng query.Range) ([]models.Article, error)
}

// ListingService serves listing windows, caching the first page of every
// filter combination.
type ListingService struct {
	Repo     ListingSource
	Cache    cache.Pages
	PageSize int
}

func (s ListingService) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return listing.DefaultPageSize
}

func (s ListingService) cache() cache.Pages {
	if s.Cache != nil {
		return s.Cache
	}
	return cache.Noop{}
}

// cached wraps a typed fetch with the first-page cache. Cache errors are
// logged and fall through to the database.
func cached[T any](ctx context.Context, c cache.Pages, plan query.Plan, rng query.Range, fetch func(context.Context, query.Plan, query.Range) ([]T, error)) ([]T, error) {
	if rng.Offset != 0 {
		return fetch(ctx, plan, rng)
	}
	var hit []T
	ok, err := c.Get(ctx, plan, rng, &hit)
	if err != nil {
		utils.L().Warn("listing cache get failed", zap.String("collection", string(plan.Collection)), zap.Error(err))
	}
	if ok {
		return hit, nil
	}
	items, err := fetch(ctx, plan, rng)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, plan, rng, items); err != nil {
		utils.L().Warn("listing cache set failed", zap.String("collection", string(plan.Collection)), zap.Error(err))
	}
	return items, nil
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

// Fetch loads one window of the plan's collection. It satisfies
// listing.Fetcher[any] and drives every mounted view.
func (s ListingService) Fetch(ctx context.Context, plan query.Plan, rng query.Range) ([]any, error) {
	c := s.cache()
	switch plan.Collection {
	case query.Jobs:
		items, err := cached(ctx, c, plan, rng, s.Repo.FetchJobs)
		return toAny(items), err
	case query.Companies:
		items, err := cached(ctx, c, plan, rng, s.Repo.FetchCompanies)
		return toAny(items), err
	case query.Articles:
		items, err := cached(ctx, c, plan, rng, s.Repo.FetchArticles)
		return toAny(items), err
	}
	return nil, fmt.Errorf("koleksi %q tidak dikenal", plan.Collection)
}

// FirstPage is the server-rendered page of a listing plus whether more
// rows may follow.
type FirstPage struct {
	Items   []any
	HasMore bool
	Plan    query.Plan
}

func (s ListingService) FirstPage(ctx context.Context, c query.Collection, st filter.State) (FirstPage, error) {
	plan := query.Translate(c, st)
	size := s.pageSize()
	items, err := s.Fetch(ctx, plan, query.Range{Offset: 0, Limit: size})
	if err != nil {
		return FirstPage{}, err
	}
	return FirstPage{Items: items, HasMore: len(items) >= size, Plan: plan}, nil
}

// Invalidate drops cached pages of c after an admin write.
func (s ListingService) Invalidate(ctx context.Context, c query.Collection) {
	if err := s.cache().Invalidate(ctx, c); err != nil {
		utils.L().Warn("listing cache invalidate failed", zap.String("collection", string(c)), zap.Error(err))
	}
}
