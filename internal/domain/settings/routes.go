package settings

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the settings routes.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/settings", h.Get)
	r.POST("/settings_save", h.Save)
	r.POST("/upload_folder/open", h.OpenUploadFolder)
}
