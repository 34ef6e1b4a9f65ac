package settings

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"postkutsche/internal/config"
	"postkutsche/internal/notify"
	"postkutsche/internal/pkg/response"
)

// Handler exposes the global settings page: folders, credentials, and the
// "open upload folder" shortcut.
type Handler struct {
	cfg    *config.Store
	opener notify.Opener
}

func NewHandler(cfg *config.Store, opener notify.Opener) *Handler {
	return &Handler{cfg: cfg, opener: opener}
}

// Get returns the current settings for the settings form.
func (h *Handler) Get(c *gin.Context) {
	cfg := h.cfg.Snapshot()
	response.Success(c, http.StatusOK, gin.H{
		"upload_folder":  cfg.Paths.UploadFolder,
		"archive_folder": cfg.Paths.ArchiveFolder,
		"username":       cfg.OnlineBrief24.Username,
		"password":       cfg.OnlineBrief24.Password,
	})
}

// Save overwrites the settings and persists them to the TOML file.
func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cfg := h.cfg.Snapshot()
	cfg.Paths.UploadFolder = strings.TrimSpace(req.UploadFolder)
	cfg.Paths.ArchiveFolder = strings.TrimSpace(req.ArchiveFolder)
	cfg.OnlineBrief24.Username = strings.TrimSpace(req.Username)
	cfg.OnlineBrief24.Password = req.Password

	if err := h.cfg.Update(cfg); err != nil {
		response.Error(c, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": true})
}

// OpenUploadFolder opens the upload folder in the platform file manager.
func (h *Handler) OpenUploadFolder(c *gin.Context) {
	folder := h.cfg.Snapshot().Paths.UploadFolder
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "upload folder does not exist")
		return
	}

	if err := h.opener.OpenPath(folder); err != nil {
		response.Error(c, http.StatusInternalServerError, "OPEN_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"opened": folder})
}
