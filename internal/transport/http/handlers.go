package httpt

import (
	"context"
	"net/http"

	"artnotifier/internal/entity"
	"artnotifier/internal/service"
	"artnotifier/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Readiness check
// @Description  Pings the database and other dependencies.
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} httpt.ErrorResponse
// @Router       /ready [get]
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	for _, checker := range h.ready {
		if err := checker.Ping(ctx); err != nil {
			logger.Ctx(ctx, h.log).Warn("readiness check failed", zap.Error(err))
			h.respondError(c, http.StatusServiceUnavailable, "not_ready", "Dependencies not ready")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// @Summary      Dispatch a notification
// @Description  Creates a notification for a user unless their preferences suppress it.
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body httpt.DispatchRequest true "Notification to dispatch"
// @Success      201 {object} httpt.DispatchResponse "Created"
// @Success      200 {object} httpt.DispatchResponse "Suppressed by preferences"
// @Failure      400 {object} httpt.ErrorResponse
// @Failure      500 {object} httpt.ErrorResponse
// @Router       /api/notifications [post]
func (h *Handler) Dispatch(c *gin.Context) {
	const op = "transport.http.Dispatch"

	var body DispatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleBindError(c, op, err)
		return
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		h.handleBindError(c, op, err)
		return
	}

	req := service.DispatchRequest{
		UserID:   userID,
		Channel:  entity.Channel(body.Type),
		Category: entity.Category(body.Category),
		Title:    body.Title,
		Message:  body.Message,
		Priority: entity.Priority(body.Priority),
		Data:     body.Data,
	}
	if body.ScheduledFor != nil {
		req.ScheduledFor = body.ScheduledFor.UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	res, err := h.svc.Dispatch(ctx, req)
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	if res.Suppressed {
		c.JSON(http.StatusOK, DispatchResponse{Suppressed: true})
		return
	}
	c.JSON(http.StatusCreated, DispatchResponse{ID: res.Notification.ID.String()})
}

// @Summary      List notifications
// @Description  Returns the caller's notifications, newest first.
// @Tags         Notification
// @Produce      json
// @Security     UserID
// @Param        status   query string false "Filter by status"
// @Param        category query string false "Filter by category"
// @Param        type     query string false "Filter by channel"
// @Param        unread   query bool   false "Only unread"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Page size"   default(20)
// @Success      200 {object} entity.Page
// @Failure      400 {object} httpt.ErrorResponse
// @Failure      401 {object} httpt.ErrorResponse
// @Router       /api/notifications [get]
func (h *Handler) List(c *gin.Context) {
	const op = "transport.http.List"

	var params ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.handleBindError(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	page, err := h.svc.List(ctx, ownerFrom(c), service.ListQuery{
		Status:   entity.Status(params.Status),
		Category: entity.Category(params.Category),
		Channel:  entity.Channel(params.Type),
		Unread:   params.Unread,
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary      Notification counts
// @Tags         Notification
// @Produce      json
// @Security     UserID
// @Success      200 {object} entity.Counts
// @Failure      401 {object} httpt.ErrorResponse
// @Router       /api/notifications/count [get]
func (h *Handler) Count(c *gin.Context) {
	const op = "transport.http.Count"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	counts, err := h.svc.Counts(ctx, ownerFrom(c))
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// @Summary      Mark a notification read
// @Tags         Notification
// @Produce      json
// @Security     UserID
// @Param        id path string true "Notification id"
// @Success      200 {object} entity.Notification
// @Failure      400 {object} httpt.ErrorResponse
// @Failure      404 {object} httpt.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	const op = "transport.http.MarkRead"

	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.handleInvalidUUID(c, op, raw)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	n, err := h.svc.MarkRead(ctx, id, ownerFrom(c))
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// @Summary      Mark all notifications read
// @Tags         Notification
// @Produce      json
// @Security     UserID
// @Success      200 {object} httpt.MarkAllReadResponse
// @Failure      401 {object} httpt.ErrorResponse
// @Router       /api/notifications/mark-all-read [patch]
func (h *Handler) MarkAllRead(c *gin.Context) {
	const op = "transport.http.MarkAllRead"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	updated, err := h.svc.MarkAllRead(ctx, ownerFrom(c))
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, MarkAllReadResponse{
		Message: "All notifications marked as read",
		Updated: updated,
	})
}

// @Summary      Delete a notification
// @Tags         Notification
// @Produce      json
// @Security     UserID
// @Param        id path string true "Notification id"
// @Success      200 {object} httpt.SuccessResponse
// @Failure      400 {object} httpt.ErrorResponse
// @Failure      404 {object} httpt.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	const op = "transport.http.Delete"

	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.handleInvalidUUID(c, op, raw)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	if err = h.svc.Delete(ctx, id, ownerFrom(c)); err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Notification deleted successfully"})
}

// @Summary      Get notification preferences
// @Tags         Preferences
// @Produce      json
// @Security     UserID
// @Success      200 {object} httpt.PreferencesResponse
// @Failure      404 {object} httpt.ErrorResponse
// @Router       /api/notifications/preferences [get]
func (h *Handler) GetPreferences(c *gin.Context) {
	const op = "transport.http.GetPreferences"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	prefs, err := h.svc.GetPreferences(ctx, ownerFrom(c))
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{NotificationPreferences: *prefs})
}

// @Summary      Replace notification preferences
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Security     UserID
// @Param        request body httpt.PreferencesBody true "New preference matrix"
// @Success      200 {object} httpt.PreferencesResponse
// @Failure      400 {object} httpt.ErrorResponse
// @Failure      404 {object} httpt.ErrorResponse
// @Router       /api/notifications/preferences [put]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	const op = "transport.http.UpdatePreferences"

	var body PreferencesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleBindError(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	prefs, err := h.svc.UpdatePreferences(ctx, ownerFrom(c), *body.NotificationPreferences)
	if err != nil {
		h.handleServiceError(c, op, err)
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{
		Message:                 "Preferences updated successfully",
		NotificationPreferences: *prefs,
	})
}
