package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jenjangkarir/internal/query"
	"jenjangkarir/internal/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	evictSpec  = "@every 1m"
	expireSpec = "0 * * * *"

	expireTimeout = 2 * time.Minute
)

// ViewEvicter drops list views nobody has touched for ttl.
type ViewEvicter interface {
	EvictIdle(ttl time.Duration) int
}

// JobExpirer closes jobs whose deadline has passed.
type JobExpirer interface {
	ExpirePastDeadline(ctx context.Context, now time.Time) (int64, error)
}

// Invalidator drops cached listing pages.
type Invalidator interface {
	Invalidate(ctx context.Context, c query.Collection)
}

// Manager runs the housekeeping jobs.
type Manager struct {
	cron    *cron.Cron
	views   ViewEvicter
	viewTTL time.Duration
	jobs    JobExpirer
	cache   Invalidator
	now     func() time.Time
}

func NewManager(views ViewEvicter, viewTTL time.Duration, jobs JobExpirer, cache Invalidator) *Manager {
	return &Manager{
		cron:    cron.New(),
		views:   views,
		viewTTL: viewTTL,
		jobs:    jobs,
		cache:   cache,
		now:     time.Now,
	}
}

// Start registers the jobs and starts the scheduler.
func (m *Manager) Start() error {
	if m.views != nil {
		if _, err := m.cron.AddFunc(evictSpec, m.evictViews); err != nil {
			return fmt.Errorf("gagal daftar job evict view: %w", err)
		}
	}
	if m.jobs != nil {
		if _, err := m.cron.AddFunc(expireSpec, m.expireJobs); err != nil {
			return fmt.Errorf("gagal daftar job expire lowongan: %w", err)
		}
	}
	m.cron.Start()
	utils.L().Info("cron manager started", zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
	utils.L().Info("cron manager stopped")
}

func (m *Manager) evictViews() {
	if n := m.views.EvictIdle(m.viewTTL); n > 0 {
		utils.L().Info("evicted idle list views", zap.Int("count", n), zap.Duration("ttl", m.viewTTL))
	}
}

func (m *Manager) expireJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), expireTimeout)
	defer cancel()

	n, err := m.jobs.ExpirePastDeadline(ctx, m.now())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.L().Error("job expiry timed out", zap.Duration("timeout", expireTimeout))
		} else {
			utils.L().Error("job expiry failed", zap.Error(err))
		}
		return
	}
	if n > 0 {
		utils.L().Info("expired jobs past deadline", zap.Int64("count", n))
		if m.cache != nil {
			m.cache.Invalidate(ctx, query.Jobs)
		}
	}
}
