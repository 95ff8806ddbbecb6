package services

import (
	"context"

	"jenjangkarir/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// AdminStats feeds the admin dashboard.
type AdminStats struct {
	JobsByStatus         map[string]int `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	Companies            int            `json:"companies"`
	Articles             int            `json:"articles"`
	Users                int            `json:"users"`
	ActiveViews          int            `json:"active_views"`
}

type StatsService struct {
	Jobs         repositories.JobRepository
	Companies    repositories.CompanyRepository
	Articles     repositories.ArticleRepository
	Applications repositories.ApplicationRepository
	Users        repositories.UserRepository
	// ActiveViews reports mounted list views; nil reads as zero.
	ActiveViews func() int
}

func (s StatsService) Load(ctx context.Context) (AdminStats, error) {
	var out AdminStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.JobsByStatus, err = s.Jobs.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ApplicationsByStatus, err = s.Applications.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Companies, err = s.Companies.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Articles, err = s.Articles.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Users, err = s.Users.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminStats{}, err
	}
	if s.ActiveViews != nil {
		out.ActiveViews = s.ActiveViews()
	}
	return out, nil
}
