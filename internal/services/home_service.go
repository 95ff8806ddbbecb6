package services

import (
	"context"

	"jenjangkarir/internal/filter"
	"jenjangkarir/internal/query"

	"golang.org/x/sync/errgroup"
)

// HomeSections is the landing page payload.
type HomeSections struct {
	Jobs      []any `json:"jobs"`
	Companies []any `json:"companies"`
	Articles  []any `json:"articles"`
}

type HomeService struct {
	Listing ListingService
	Limit   int
}

// Load fetches the three sections concurrently; the first failure cancels
// the rest.
func (s HomeService) Load(ctx context.Context) (HomeSections, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = 6
	}
	var out HomeSections
	g, gctx := errgroup.WithContext(ctx)
	section := func(c query.Collection, st filter.State, dst *[]any) {
		g.Go(func() error {
			items, err := s.Listing.Fetch(gctx, query.Translate(c, st), query.Range{Limit: limit})
			if err != nil {
				return err
			}
			*dst = items
			return nil
		})
	}
	section(query.Jobs, filter.State{}, &out.Jobs)
	section(query.Companies, filter.State{filter.KeySort: {"newest"}}, &out.Companies)
	section(query.Articles, filter.State{}, &out.Articles)

	if err := g.Wait(); err != nil {
		return HomeSections{}, err
	}
	return out, nil
}
