package middleware

import (
	"net/http"

	"jenjangkarir/internal/filter"
	"jenjangkarir/internal/listing"

	"github.com/gin-gonic/gin"
)

const viewKey = "listingView"

// ViewGetter looks up a mounted list view.
type ViewGetter interface {
	Get(id string) (*listing.View, error)
}

// FilterProvider resolves the view named by the :id param and mounts its
// filter store on the request context. Everything downstream reads the
// store with filter.FromContext.
func FilterProvider(views ViewGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := views.Get(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":      "view tidak ditemukan atau sudah kedaluwarsa",
				"code":       "view_not_found",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(viewKey, v)
		c.Request = c.Request.WithContext(filter.WithStore(c.Request.Context(), v.Store))
		c.Next()
	}
}

// View returns the view FilterProvider resolved.
func View(c *gin.Context) *listing.View {
	v, _ := c.MustGet(viewKey).(*listing.View)
	return v
}
