package handlers

import (
	"net/http"

	"jenjangkarir/internal/chips"
	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/filter"
	"jenjangkarir/internal/http/middleware"
	"jenjangkarir/internal/listing"

	"github.com/gin-gonic/gin"
)

type mountRequest struct {
	FilterType string `json:"filter_type"`
	Query      string `json:"query"`
}

// viewResponse is a view snapshot plus its chip bar.
type viewResponse struct {
	listing.ViewSnapshot
	Chips     []chips.Chip `json:"chips"`
	ShowReset bool         `json:"show_reset"`
}

func (h *Handlers) viewJSON(c *gin.Context, status int, v *listing.View, extra gin.H) {
	bar := h.Chips.Render(c.Request.Context(), v.Query())
	resp := viewResponse{ViewSnapshot: v.Snapshot(), Chips: bar.Chips, ShowReset: bar.ShowReset}
	if len(extra) == 0 {
		c.JSON(status, resp)
		return
	}
	extra["view"] = resp
	c.JSON(status, extra)
}

// MountView creates a list view for filter_type seeded from query and
// returns its first page.
func (h *Handlers) MountView(c *gin.Context) {
	var req mountRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	ft, err := filter.ParseFilterType(req.FilterType)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "filter_type", Msg: err.Error()})
		return
	}
	v, err := h.Views.Mount(c.Request.Context(), ft, filter.Parse(req.Query))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Request = c.Request.WithContext(filter.WithStore(c.Request.Context(), v.Store))
	h.viewJSON(c, http.StatusCreated, v, nil)
}

func (h *Handlers) GetView(c *gin.Context) {
	h.viewJSON(c, http.StatusOK, middleware.View(c), nil)
}

func (h *Handlers) UnmountView(c *gin.Context) {
	if err := h.Views.Unmount(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type filterRequest struct {
	Action  string              `json:"action"`
	Key     string              `json:"key"`
	Values  []string            `json:"values"`
	Filters map[string][]string `json:"filters"`
}

// UpdateFilters edits the pending filters. Nothing reloads until apply.
func (h *Handlers) UpdateFilters(c *gin.Context) {
	var req filterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	store := filter.MustFromContext(c.Request.Context())
	switch req.Action {
	case "set", "":
		if req.Key == "" {
			RespondDomainError(c, domain.ValidationError{Field: "key", Msg: "key wajib diisi"})
			return
		}
		store.SetFilter(req.Key, req.Values...)
	case "set_multiple":
		store.SetMultipleFilters(req.Filters)
	case "remove":
		store.RemoveFilter(req.Key)
	default:
		RespondDomainError(c, domain.ValidationError{Field: "action", Msg: "action harus set, set_multiple atau remove"})
		return
	}
	h.viewJSON(c, http.StatusOK, middleware.View(c), nil)
}

func (h *Handlers) ApplyFilters(c *gin.Context) {
	store := filter.MustFromContext(c.Request.Context())
	if err := store.ApplyFilters(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.viewJSON(c, http.StatusOK, middleware.View(c), nil)
}

func (h *Handlers) ResetFilters(c *gin.Context) {
	if _, err := h.Chips.Reset(c.Request.Context(), ""); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.viewJSON(c, http.StatusOK, middleware.View(c), nil)
}

type syncRequest struct {
	Query string `json:"query"`
}

// SyncView feeds a client-side URL change (back/forward) into the view.
func (h *Handlers) SyncView(c *gin.Context) {
	var req syncRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	v := middleware.View(c)
	changed := v.SyncFromURL(req.Query)
	h.viewJSON(c, http.StatusOK, v, gin.H{"changed": changed})
}

// LoadMore is the active "load more" control.
func (h *Handlers) LoadMore(c *gin.Context) {
	v := middleware.View(c)
	res, err := v.Trigger.LoadMore(c.Request.Context())
	extra := gin.H{"result": res.String()}
	if err != nil {
		extra["error"] = "gagal memuat halaman berikutnya"
	}
	h.viewJSON(c, http.StatusOK, v, extra)
}

// Scroll reports viewport metrics; the trigger decides whether to load.
func (h *Handlers) Scroll(c *gin.Context) {
	var vp listing.Viewport
	if !BindJSONOrError(c, &vp) {
		return
	}
	v := middleware.View(c)
	v.Events.Publish(vp)
	h.viewJSON(c, http.StatusOK, v, nil)
}

type chipRequest struct {
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}

// RemoveViewChip drops one chip through the view's store and applies.
func (h *Handlers) RemoveViewChip(c *gin.Context) {
	var req chipRequest
	if err := c.ShouldBind(&req); err != nil || req.Key == "" {
		RespondError(c, http.StatusBadRequest, "key chip wajib diisi", err)
		return
	}
	v := middleware.View(c)
	if _, err := h.Chips.Remove(c.Request.Context(), v.Query(), chips.Chip{Key: req.Key, Value: req.Value}); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.viewJSON(c, http.StatusOK, v, nil)
}
