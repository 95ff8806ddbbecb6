package api

import (
	stdhttp "net/http"

	intconfig "jenjangkarir/internal/config"
	"jenjangkarir/internal/domain"
	h "jenjangkarir/internal/http/handlers"
	"jenjangkarir/internal/http/middleware"
	"jenjangkarir/internal/services"
	"jenjangkarir/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(hs.Auth, services.SessionCookie)

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/db-check", hs.DBCheck)
		api.GET("/routes", hs.Routes)

		// Public listings (first page, server-rendered)
		api.GET("/home", hs.HomePage)
		api.GET("/jobs", hs.ListJobs)
		api.GET("/jobs/:slug", hs.JobDetail)
		api.GET("/companies", hs.ListCompanies)
		api.GET("/companies/:slug", hs.CompanyDetail)
		api.GET("/articles", hs.ListArticles)
		api.GET("/articles/:slug", hs.ArticleDetail)

		// Chip bar without a mounted view
		chipsGroup := api.Group("/chips")
		chipsGroup.GET("", hs.RenderChips)
		chipsGroup.GET("/remove", hs.RemoveChip)
		chipsGroup.GET("/reset", hs.ResetChips)

		// List views: filter store + loader + scroll trigger
		api.POST("/views", hs.MountView)
		view := api.Group("/views/:id", middleware.FilterProvider(hs.Views))
		view.GET("", hs.GetView)
		view.DELETE("", hs.UnmountView)
		view.POST("/filters", hs.UpdateFilters)
		view.POST("/apply", hs.ApplyFilters)
		view.POST("/reset", hs.ResetFilters)
		view.POST("/sync", hs.SyncView)
		view.POST("/more", hs.LoadMore)
		view.POST("/scroll", hs.Scroll)
		view.DELETE("/chips", hs.RemoveViewChip)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", hs.Register)
		auth.POST("/login", hs.Login)
		auth.POST("/logout", hs.Logout)
		auth.POST("/admin/login", hs.AdminLogin)
		auth.GET("/me", requireAuth, hs.Me)

		// Applications
		api.POST("/jobs/:slug/apply", requireAuth, middleware.RequireRoles(string(domain.RoleUser)), hs.Apply)
		dashboard := api.Group("/dashboard", requireAuth, middleware.RequireRoles(string(domain.RoleUser)))
		dashboard.GET("/applications", hs.MyApplications)
		dashboard.GET("/applications/:id/receipt", hs.GetApplicationReceiptPDF)

		// Admin
		admin := api.Group("/admin", requireAuth, middleware.RequireRoles(string(domain.RoleAdmin)))
		admin.GET("/stats", hs.AdminStats)
		admin.GET("/jobs/:id", hs.AdminGetJob)
		admin.POST("/jobs", hs.AdminCreateJob)
		admin.PUT("/jobs/:id", hs.AdminUpdateJob)
		admin.DELETE("/jobs/:id", hs.AdminDeleteJob)
		admin.POST("/companies", hs.AdminCreateCompany)
		admin.PUT("/companies/:id", hs.AdminUpdateCompany)
		admin.DELETE("/companies/:id", hs.AdminDeleteCompany)
		admin.POST("/articles", hs.AdminCreateArticle)
		admin.PUT("/articles/:id", hs.AdminUpdateArticle)
		admin.DELETE("/articles/:id", hs.AdminDeleteArticle)
		admin.GET("/applications", hs.AdminListApplications)
		admin.PUT("/applications/:id/status", hs.AdminUpdateApplicationStatus)
	}

	hs.SetRouter(r)
	return r
}
