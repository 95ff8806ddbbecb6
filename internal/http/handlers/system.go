package handlers

import (
	"net/http"

	intconfig "jenjangkarir/internal/config"
	"jenjangkarir/internal/db"

	"github.com/gin-gonic/gin"
)

var requiredTables = []string{"users", "companies", "jobs", "articles", "applications"}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backend jenjangkarir berjalan"})
}

func (h *Handlers) DBCheck(c *gin.Context) {
	if err := intconfig.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal ping database: " + err.Error()})
		return
	}
	missing := db.MissingTables(c.Request.Context(), intconfig.DB, h.Dialect, requiredTables...)
	if len(missing) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tabel belum lengkap", "missing_tables": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "dialect": string(h.Dialect)})
}

func (h *Handlers) Routes(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
