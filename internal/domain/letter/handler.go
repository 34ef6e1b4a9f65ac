package letter

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"postkutsche/internal/config"
	"postkutsche/internal/pkg/response"
)

const maxUploadSize = 50 * 1024 * 1024 // 50 MB

// Handler exposes the pending-file routes to the UI shell.
type Handler struct {
	service *Service
	cfg     *config.Store
}

func NewHandler(service *Service, cfg *config.Store) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// List reconciles the upload folder and returns the pending files with their
// mailing options.
func (h *Handler) List(c *gin.Context) {
	files, err := h.service.Reconcile(c.Request.Context(), h.cfg.Snapshot().Paths.UploadFolder)
	if err != nil {
		if err == ErrNoUploadFolder {
			response.Error(c, http.StatusPreconditionFailed, "NO_UPLOAD_FOLDER", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "RECONCILE_FAILED", err.Error())
		return
	}

	items := make([]PendingFileResponse, 0, len(files))
	for _, f := range files {
		items = append(items, ToResponse(f))
	}
	response.Success(c, http.StatusOK, items)
}

// Upload accepts a PDF via drag and drop and drops it into the upload folder.
// The next List call picks it up and creates its settings record.
func (h *Handler) Upload(c *gin.Context) {
	uploadFolder := h.cfg.Snapshot().Paths.UploadFolder
	if strings.TrimSpace(uploadFolder) == "" {
		response.Error(c, http.StatusPreconditionFailed, "NO_UPLOAD_FOLDER", ErrNoUploadFolder.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}
	if fileHeader.Size == 0 {
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", ErrEmptyFile.Error())
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", err.Error())
		return
	}
	defer file.Close()

	// Sniff the MIME type from the first 512 bytes.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if mimeType != "application/pdf" {
		response.Error(c, http.StatusBadRequest, "NOT_PDF", ErrNotPDF.Error())
		return
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	if err := os.MkdirAll(uploadFolder, 0o755); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", err.Error())
		return
	}

	filename := filepath.Base(fileHeader.Filename)
	if filename == "." || filename == string(filepath.Separator) {
		response.Error(c, http.StatusBadRequest, "INVALID_FILENAME", ErrInvalidFilename.Error())
		return
	}
	target := filepath.Join(uploadFolder, filename)
	if _, err := os.Stat(target); err == nil {
		// Same name already waiting; keep both.
		ext := filepath.Ext(filename)
		base := strings.TrimSuffix(filename, ext)
		target = filepath.Join(uploadFolder, fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext))
	}

	dst, err := os.Create(target)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", err.Error())
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(target)
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"filename": filepath.Base(target)})
}

// SaveSettings applies the per-file settings form.
func (h *Handler) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	record, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, ToResponse(record))
}
