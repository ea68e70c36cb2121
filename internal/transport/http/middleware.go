package httpt

import (
	"net/http"
	"strconv"
	"time"

	"artnotifier/pkg/logger"
	"artnotifier/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	_requestIDHeader = "X-Request-ID"
	_userIDHeader    = "X-User-ID"
	_ownerKey        = "owner"
)

// requestIDMiddleware keeps an upstream request id when the gateway sent
// one and generates a fresh id otherwise.
func (h *Handler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(_requestIDHeader)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.SetRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(_requestIDHeader, requestID)
		c.Next()
	}
}

func (h *Handler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Ctx(c.Request.Context(), h.log).Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

func (h *Handler) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func (h *Handler) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Ctx(c.Request.Context(), h.log).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error occurred",
			Code:    "internal_error",
		})
	})
}

// ownerMiddleware resolves the caller from X-User-ID, which the
// authenticating gateway sets after verifying the token.
func (h *Handler) ownerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := uuid.Parse(c.GetHeader(_userIDHeader))
		if err != nil || owner == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or invalid user identity",
				Code:    "unauthorized",
			})
			return
		}
		c.Set(_ownerKey, owner)
		c.Next()
	}
}

func ownerFrom(c *gin.Context) uuid.UUID {
	owner, _ := c.MustGet(_ownerKey).(uuid.UUID)
	return owner
}
