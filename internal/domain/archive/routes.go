package archive

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the archive routes.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	a := r.Group("/archive")
	{
		a.GET("", h.List)
		a.POST("/open", h.Open)
	}
}
