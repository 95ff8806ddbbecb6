package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"jenjangkarir/internal/chips"

	"github.com/gin-gonic/gin"
)

// Control params of the fallback chip routes. They never reach the filters.
const (
	chipKeyParam   = "chip_key"
	chipValueParam = "chip_value"
	returnParam    = "return_to"
)

// filterQuery strips the control params from the request query.
func filterQuery(c *gin.Context) string {
	q := c.Request.URL.Query()
	q.Del(chipKeyParam)
	q.Del(chipValueParam)
	q.Del(returnParam)
	return q.Encode()
}

// safeReturnPath keeps redirects on this site: a rooted path, no scheme and
// no protocol-relative "//host".
func safeReturnPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return u.Path
}

func redirectTo(c *gin.Context, rawQuery string) {
	target := safeReturnPath(c.Query(returnParam))
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	c.Redirect(http.StatusFound, target)
}

// RenderChips renders the chip bar straight off the URL query.
func (h *Handlers) RenderChips(c *gin.Context) {
	c.JSON(http.StatusOK, h.Chips.Render(c.Request.Context(), filterQuery(c)))
}

// RemoveChip rewrites the URL without one chip and redirects to it.
func (h *Handlers) RemoveChip(c *gin.Context) {
	key := strings.TrimSpace(c.Query(chipKeyParam))
	if key == "" {
		respondError(c, http.StatusBadRequest, "invalid_chip", "chip_key wajib diisi", nil)
		return
	}
	next, err := h.Chips.Remove(c.Request.Context(), filterQuery(c), chips.Chip{Key: key, Value: c.Query(chipValueParam)})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	redirectTo(c, next)
}

// ResetChips redirects to the URL with every filter but the search gone.
func (h *Handlers) ResetChips(c *gin.Context) {
	next, err := h.Chips.Reset(c.Request.Context(), filterQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	redirectTo(c, next)
}
