// Package http provides HTTP handlers for shield status and verification log access.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultshield/vaultshield/internal/httputil"
	"github.com/vaultshield/vaultshield/internal/shield/http/dto"
	shieldUseCase "github.com/vaultshield/vaultshield/internal/shield/usecase"
)

// ShieldHandler handles HTTP requests for shield introspection. Both
// endpoints are read-only: neither mutates the verification log.
type ShieldHandler struct {
	shieldUseCase shieldUseCase.ShieldUseCase
	logger        *slog.Logger
}

// NewShieldHandler creates a new shield handler with required dependencies.
func NewShieldHandler(useCase shieldUseCase.ShieldUseCase, logger *slog.Logger) *ShieldHandler {
	return &ShieldHandler{
		shieldUseCase: useCase,
		logger:        logger,
	}
}

// StatusHandler reports shield identity and log statistics.
// GET /v1/shield/status
func (h *ShieldHandler) StatusHandler(c *gin.Context) {
	status, err := h.shieldUseCase.Status(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusToResponse(status))
}

// ListVerificationsHandler pages through the verification log, newest first.
// GET /v1/shield/verifications?offset=0&limit=50
func (h *ShieldHandler) ListVerificationsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	records, err := h.shieldUseCase.ListVerifications(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerificationRecordsToListResponse(records))
}
