package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jenjangkarir/internal/cache"
	"jenjangkarir/internal/chips"
	intconfig "jenjangkarir/internal/config"
	"jenjangkarir/internal/cron"
	router "jenjangkarir/internal/http"
	"jenjangkarir/internal/http/handlers"
	"jenjangkarir/internal/listing"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/repositories"
	"jenjangkarir/internal/services"
	"jenjangkarir/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	log := utils.InitLogger(env.LogLevel, env.LogFormat)
	defer func() { _ = log.Sync() }()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatal("gagal konek database", zap.Error(err))
	}
	defer intconfig.CloseDB()

	pages, rdb := pageCache(env)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	dialect := query.ParseDialect(env.DBDriver)
	conn := repositories.Conn{DB: db, Dialect: dialect}
	jobs := repositories.JobRepository{Conn: conn}
	companies := repositories.CompanyRepository{Conn: conn}
	articles := repositories.ArticleRepository{Conn: conn}
	applications := repositories.ApplicationRepository{Conn: conn}
	users := repositories.UserRepository{Conn: conn}

	listingSvc := services.ListingService{
		Repo:     repositories.ListingRepository{Conn: conn},
		Cache:    pages,
		PageSize: env.ListingPageSize,
	}
	views := listing.NewRegistry(listingSvc.Fetch, listing.Options{
		PageSize: env.ListingPageSize,
		Timeout:  env.ListingFetchTimeout,
		Retry:    listing.RetryPolicy{MaxAttempts: env.ListingMaxAttempts},
	}, listing.TriggerOptions{
		Threshold: env.ListingScrollThreshold,
		Every:     env.ListingScrollEvery,
	})
	defer views.CloseAll()

	hs := &handlers.Handlers{
		Listing: listingSvc,
		Home:    services.HomeService{Listing: listingSvc},
		Catalog: services.CatalogService{
			Jobs:      jobs,
			Companies: companies,
			Articles:  articles,
			Listing:   listingSvc,
		},
		Auth: services.AuthService{
			Users:             users,
			Secret:            []byte(env.JWTSecret),
			AdminUsername:     env.AdminUsername,
			AdminPasswordHash: env.AdminPasswordHash,
		},
		Applications: services.ApplicationService{Jobs: jobs, Applications: applications},
		Receipts:     services.ReceiptService{Applications: applications},
		Stats: services.StatsService{
			Jobs:         jobs,
			Companies:    companies,
			Articles:     articles,
			Applications: applications,
			Users:        users,
			ActiveViews:  views.Len,
		},
		Views:        views,
		Chips:        chips.NewRenderer(nil),
		Dialect:      dialect,
		SecureCookie: env.CookieSecure,
	}

	r := router.NewRouter(env, hs)

	jobsCron := cron.NewManager(views, env.ViewTTL, jobs, listingSvc)
	if err := jobsCron.Start(); err != nil {
		log.Fatal("gagal menjalankan cron", zap.Error(err))
	}
	defer jobsCron.Stop()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server berjalan", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("gagal menjalankan server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("mematikan server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown server gagal", zap.Error(err))
		return
	}

	log.Info("server berhenti dengan aman")
}

// pageCache connects the first-page cache when REDIS_ADDR is set. Without
// Redis, or when it is unreachable, listings go straight to the database.
func pageCache(env intconfig.Env) (cache.Pages, *redis.Client) {
	if env.RedisAddr == "" {
		return cache.Noop{}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := cache.Connect(ctx, env.RedisAddr, env.RedisPassword, env.RedisDB)
	if err != nil {
		utils.L().Warn("redis tidak tersedia, cache listing dimatikan", zap.Error(err))
		return cache.Noop{}, nil
	}
	return cache.NewRedis(rdb, env.CacheTTL), rdb
}
