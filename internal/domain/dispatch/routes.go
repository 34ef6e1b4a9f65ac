package dispatch

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the submission trigger.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/send", h.Send)
}
