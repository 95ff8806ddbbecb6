package handlers

import (
	"net/http"

	"jenjangkarir/internal/chips"
	"jenjangkarir/internal/filter"
	"jenjangkarir/internal/query"

	"github.com/gin-gonic/gin"
)

// ListJobs, ListCompanies and ListArticles serve the server-rendered first
// page of a listing for the filters in the URL, with the chip bar.
func (h *Handlers) ListJobs(c *gin.Context)      { h.firstPage(c, filter.TypeJob) }
func (h *Handlers) ListCompanies(c *gin.Context) { h.firstPage(c, filter.TypeCompany) }
func (h *Handlers) ListArticles(c *gin.Context)  { h.firstPage(c, filter.TypeArticle) }

func (h *Handlers) firstPage(c *gin.Context, ft filter.FilterType) {
	st := filter.FromValues(c.Request.URL.Query())
	page, err := h.Listing.FirstPage(c.Request.Context(), query.CollectionFor(ft), st)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	items := page.Items
	if items == nil {
		items = []any{}
	}
	bar := chips.Build(st, h.Chips.Catalog)
	c.JSON(http.StatusOK, gin.H{
		"filter_type":         ft,
		"items":               items,
		"has_more":            page.HasMore,
		"filters":             st,
		"query":               st.Encode(),
		"active_filter_count": bar.ActiveCount,
		"chips":               bar.Chips,
		"show_reset":          bar.ShowReset,
	})
}

func (h *Handlers) JobDetail(c *gin.Context) {
	job, err := h.catalog(c).JobDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handlers) CompanyDetail(c *gin.Context) {
	company, jobs, err := h.catalog(c).CompanyDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company, "jobs": jobs})
}

func (h *Handlers) ArticleDetail(c *gin.Context) {
	article, err := h.catalog(c).ArticleDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *Handlers) HomePage(c *gin.Context) {
	sections, err := h.Home.Load(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}
