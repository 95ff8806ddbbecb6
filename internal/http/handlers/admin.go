package handlers

import (
	"net/http"
	"strconv"

	"jenjangkarir/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) AdminGetJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	job, err := h.catalog(c).JobByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handlers) AdminCreateJob(c *gin.Context) {
	var in models.JobInput
	if !BindJSONOrError(c, &in) {
		return
	}
	id, slug, err := h.catalog(c).CreateJob(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "slug": slug})
}

func (h *Handlers) AdminUpdateJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.JobInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := h.catalog(c).UpdateJob(c.Request.Context(), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lowongan diperbarui"})
}

func (h *Handlers) AdminDeleteJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog(c).DeleteJob(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lowongan dihapus"})
}

func (h *Handlers) AdminCreateCompany(c *gin.Context) {
	var in models.CompanyInput
	if !BindJSONOrError(c, &in) {
		return
	}
	id, slug, err := h.catalog(c).CreateCompany(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "slug": slug})
}

func (h *Handlers) AdminUpdateCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.CompanyInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := h.catalog(c).UpdateCompany(c.Request.Context(), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "perusahaan diperbarui"})
}

func (h *Handlers) AdminDeleteCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog(c).DeleteCompany(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "perusahaan dihapus"})
}

func (h *Handlers) AdminCreateArticle(c *gin.Context) {
	var in models.ArticleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	id, slug, err := h.catalog(c).CreateArticle(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "slug": slug})
}

func (h *Handlers) AdminUpdateArticle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.ArticleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := h.catalog(c).UpdateArticle(c.Request.Context(), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artikel diperbarui"})
}

func (h *Handlers) AdminDeleteArticle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog(c).DeleteArticle(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artikel dihapus"})
}

// GET /api/admin/applications?job_id=
func (h *Handlers) AdminListApplications(c *gin.Context) {
	var jobID int64
	if raw := c.Query("job_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			respondError(c, http.StatusBadRequest, "invalid_job_id", "job_id tidak valid", nil)
			return
		}
		jobID = v
	}
	apps, err := h.applications(c).ListForAdmin(c.Request.Context(), jobID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/applications/:id/status
func (h *Handlers) AdminUpdateApplicationStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.applications(c).UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status lamaran diperbarui"})
}

func (h *Handlers) AdminStats(c *gin.Context) {
	stats, err := h.Stats.Load(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
