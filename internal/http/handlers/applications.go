package handlers

import (
	"net/http"

	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/jobs/:slug/apply
func (h *Handlers) Apply(c *gin.Context) {
	var in models.ApplicationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	app, err := h.applications(c).Apply(c.Request.Context(), c.Param("slug"), middleware.UserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GET /api/dashboard/applications
func (h *Handlers) MyApplications(c *gin.Context) {
	apps, err := h.applications(c).ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// GetApplicationReceiptPDF returns the caller's application receipt (inline).
func (h *Handlers) GetApplicationReceiptPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := h.receipts(c).Generate(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
