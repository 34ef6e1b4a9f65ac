package dispatch

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"postkutsche/internal/pkg/response"
)

// Handler exposes the "submit all" trigger.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Send runs the submission batch. On a partial failure the response carries
// how many letters were already submitted before the batch stopped.
func (h *Handler) Send(c *gin.Context) {
	sent, err := h.service.SendAll(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			response.Error(c, http.StatusPreconditionFailed, "MISSING_CREDENTIALS", err.Error())
		case errors.Is(err, ErrNoPendingFiles):
			response.Error(c, http.StatusPreconditionFailed, "NO_PENDING_FILES", err.Error())
		default:
			response.ErrorWithDetails(c, http.StatusBadGateway, "SEND_FAILED", err.Error(), gin.H{"sent": sent})
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": sent})
}
