package letter

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the pending-file routes.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/pdf_files", h.List)
	r.POST("/file-upload", h.Upload)
	r.POST("/pdf_settings_save", h.SaveSettings)
}
