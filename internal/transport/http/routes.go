package httpt

import (
	_ "artnotifier/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Art Notifier API
// @version         1.0
// @description     In-app notification inbox and preference-filtered dispatch.
// @license.name    MIT-0
// @license.url     https://github.com/aws/mit-0
// @BasePath        /
// @securityDefinitions.apikey UserID
// @in              header
// @name            X-User-ID
func (h *Handler) setupRoutes() {
	h.router.GET("/health", h.Health)
	h.router.GET("/ready", h.Ready)

	if h.metricsEnabled {
		h.router.GET(h.metricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := h.router.Group("/api/notifications")
	api.POST("", h.Dispatch)

	inbox := api.Group("", h.ownerMiddleware())
	inbox.GET("", h.List)
	inbox.GET("/count", h.Count)
	inbox.GET("/preferences", h.GetPreferences)
	inbox.PUT("/preferences", h.UpdatePreferences)
	inbox.PATCH("/mark-all-read", h.MarkAllRead)
	inbox.PATCH("/:id/read", h.MarkRead)
	inbox.DELETE("/:id", h.Delete)

	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
