package handlers

import (
	"sync"

	"jenjangkarir/internal/chips"
	"jenjangkarir/internal/http/middleware"
	"jenjangkarir/internal/listing"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers holds the services the routes call. Services are values; each
// request works on a copy stamped with its request id.
type Handlers struct {
	Listing      services.ListingService
	Home         services.HomeService
	Catalog      services.CatalogService
	Auth         services.AuthService
	Applications services.ApplicationService
	Receipts     services.ReceiptService
	Stats        services.StatsService
	Views        *listing.Registry
	Chips        *chips.Renderer
	Dialect      query.Dialect
	// SecureCookie sets the Secure flag on the session cookie.
	SecureCookie bool

	routerMu sync.RWMutex
	router   *gin.Engine
}

// SetRouter stores the active gin engine for /api/routes.
func (h *Handlers) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}

func (h *Handlers) catalog(c *gin.Context) services.CatalogService {
	svc := h.Catalog
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (h *Handlers) auth(c *gin.Context) services.AuthService {
	svc := h.Auth
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (h *Handlers) applications(c *gin.Context) services.ApplicationService {
	svc := h.Applications
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (h *Handlers) receipts(c *gin.Context) services.ReceiptService {
	svc := h.Receipts
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}
