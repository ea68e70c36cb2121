package httpt

import (
	"errors"
	"net/http"

	"artnotifier/internal/entity"
	"artnotifier/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) handleServiceError(c *gin.Context, op string, err error) {
	log := logger.Ctx(c.Request.Context(), h.log).With(zap.String("op", op), zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrNotFound):
		log.Warn("notification not found")
		h.respondError(c, http.StatusNotFound, "not_found", "Notification not found")

	case errors.Is(err, entity.ErrUserNotFound):
		log.Warn("user not found")
		h.respondError(c, http.StatusNotFound, "user_not_found", "User not found")

	case errors.Is(err, entity.ErrInvalidData):
		log.Warn("invalid data")
		h.respondError(c, http.StatusBadRequest, "invalid_data", "Invalid input data")

	case errors.Is(err, entity.ErrInvalidTransition):
		log.Warn("invalid transition")
		h.respondError(c, http.StatusConflict, "invalid_transition",
			"Notification cannot move to the requested state")

	case errors.Is(err, entity.ErrConflictingData):
		log.Warn("conflicting data")
		h.respondError(c, http.StatusConflict, "conflict", "Data conflict occurred")

	case errors.Is(err, entity.ErrStoreUnavailable):
		log.Error("store unavailable")
		h.respondError(c, http.StatusServiceUnavailable, "unavailable",
			"Service temporarily unavailable")

	default:
		log.Error("internal server error")
		h.respondError(c, http.StatusInternalServerError, "internal_error",
			"Internal server error occurred")
	}
}

func (h *Handler) respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Code: code})
}

func (h *Handler) handleInvalidUUID(c *gin.Context, op, raw string) {
	logger.Ctx(c.Request.Context(), h.log).Warn("invalid uuid",
		zap.String("op", op),
		zap.String("value", raw),
	)
	h.respondError(c, http.StatusBadRequest, "invalid_id", "Invalid notification id")
}

func (h *Handler) handleBindError(c *gin.Context, op string, err error) {
	logger.Ctx(c.Request.Context(), h.log).Warn("bad request",
		zap.String("op", op),
		zap.Error(err),
	)
	h.respondError(c, http.StatusBadRequest, "invalid_data", "Invalid input data")
}
