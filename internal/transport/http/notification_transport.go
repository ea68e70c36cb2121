package httpt

import (
	"context"
	"errors"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_transport.go -destination=mocks/mock_transport.go -package=mocks

const (
	_defaultRequestTimeout = 3 * time.Second
	_defaultMetricsPath    = "/metrics"
)

type (
	NotifyService interface {
		Dispatch(ctx context.Context, req service.DispatchRequest) (*service.DispatchResult, error)
		List(ctx context.Context, owner uuid.UUID, q service.ListQuery) (*entity.Page, error)
		Counts(ctx context.Context, owner uuid.UUID) (*entity.Counts, error)
		MarkRead(ctx context.Context, id, owner uuid.UUID) (*entity.Notification, error)
		MarkAllRead(ctx context.Context, owner uuid.UUID) (int64, error)
		Delete(ctx context.Context, id, owner uuid.UUID) error
		GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.PreferenceMatrix, error)
		UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs entity.PreferenceMatrix) (*entity.PreferenceMatrix, error)
	}

	// ReadinessChecker reports whether a dependency can serve traffic.
	ReadinessChecker interface {
		Ping(ctx context.Context) error
	}
)

type Handler struct {
	svc    NotifyService
	ready  []ReadinessChecker
	log    *zap.Logger
	router *gin.Engine

	requestTimeout time.Duration
	metricsEnabled bool
	metricsPath    string
}

type Option func(*Handler)

func RequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.requestTimeout = d
		}
	}
}

// Metrics exposes the Prometheus registry on path when enabled.
func Metrics(enabled bool, path string) Option {
	return func(h *Handler) {
		h.metricsEnabled = enabled
		if path != "" {
			h.metricsPath = path
		}
	}
}

// Readiness adds dependencies checked by GET /ready.
func Readiness(checkers ...ReadinessChecker) Option {
	return func(h *Handler) {
		h.ready = append(h.ready, checkers...)
	}
}

func NewNotifyHandler(svc NotifyService, log *zap.Logger, opts ...Option) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("httpt.NewNotifyHandler: nil service")
	}
	if log == nil {
		return nil, errors.New("httpt.NewNotifyHandler: nil logger")
	}

	h := &Handler{
		svc:            svc,
		log:            log,
		requestTimeout: _defaultRequestTimeout,
		metricsPath:    _defaultMetricsPath,
	}
	for _, opt := range opts {
		opt(h)
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(h.metricsMiddleware())
	router.Use(h.recoveryMiddleware())

	h.router = router
	h.setupRoutes()

	return h, nil
}

func (h *Handler) Engine() *gin.Engine {
	return h.router
}
