package archive

import (
	"database/sql"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"postkutsche/internal/config"
	"postkutsche/internal/notify"
	"postkutsche/internal/pkg/response"
)

// Handler exposes the archive routes to the UI shell.
type Handler struct {
	repo   Repository
	cfg    *config.Store
	opener notify.Opener
}

func NewHandler(repo Repository, cfg *config.Store, opener notify.Opener) *Handler {
	return &Handler{repo: repo, cfg: cfg, opener: opener}
}

// List returns all archived letters, most recent mailing first.
func (h *Handler) List(c *gin.Context) {
	files, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	items := make([]gin.H, 0, len(files))
	for _, f := range files {
		items = append(items, gin.H{
			"id":           f.ID,
			"adler32":      f.Adler32,
			"filename":     f.Filename,
			"color":        f.Color,
			"duplex":       f.Duplex,
			"envelope":     f.Envelope,
			"distribution": f.Distribution,
			"registered":   nullable(f.Registered),
			"payment_slip": nullable(f.PaymentSlip),
			"created_at":   f.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	response.Success(c, http.StatusOK, items)
}

type openRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// Open opens an archived file with the platform default viewer. The filename
// is restricted to the archive folder.
func (h *Handler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	archiveFolder := h.cfg.Snapshot().ArchiveFolder()
	path := filepath.Join(archiveFolder, filepath.Base(req.Filename))
	if _, err := os.Stat(path); err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "archived file does not exist")
		return
	}

	if err := h.opener.OpenPath(path); err != nil {
		response.Error(c, http.StatusInternalServerError, "OPEN_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"opened": path})
}

func nullable(ns sql.NullString) interface{} {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
