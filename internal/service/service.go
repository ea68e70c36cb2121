package service

import (
	"context"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/logger"
	"artnotifier/pkg/storage/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const (
	_slowOperationThreshold = 200 * time.Millisecond
	_defaultDispatchTimeout = 2 * time.Second
	_defaultCASAttempts     = 3
)

type (
	NotifyRepository interface {
		Create(ctx context.Context, qe postgres.QueryExecuter, n entity.Notification) (*entity.Notification, error)
		GetByID(ctx context.Context, qe postgres.QueryExecuter, id uuid.UUID) (*entity.Notification, error)
		GetByIDAndOwner(ctx context.Context, qe postgres.QueryExecuter, id, owner uuid.UUID) (*entity.Notification, error)
		List(ctx context.Context, qe postgres.QueryExecuter, filter entity.Filter, page entity.PageRequest) ([]entity.Notification, error)
		Count(ctx context.Context, qe postgres.QueryExecuter, filter entity.Filter) (int64, error)
		CompareAndSwap(ctx context.Context, qe postgres.QueryExecuter, prev, next entity.Notification) (bool, error)
		MarkAllRead(ctx context.Context, qe postgres.QueryExecuter, owner uuid.UUID, now time.Time) (int64, error)
		Delete(ctx context.Context, qe postgres.QueryExecuter, id, owner uuid.UUID) error
	}

	PreferenceRepository interface {
		GetPreferences(ctx context.Context, qe postgres.QueryExecuter, userID uuid.UUID) (*entity.PreferenceMatrix, error)
		SetPreferences(ctx context.Context, qe postgres.QueryExecuter, userID uuid.UUID, prefs entity.PreferenceMatrix) error
	}

	// NotifyService decides which notifications exist, moves them through
	// their lifecycle and answers feed queries. All state lives in the
	// repositories; the service itself is safe for concurrent use.
	NotifyService struct {
		repo  NotifyRepository
		prefs PreferenceRepository
		log   *zap.Logger
		now   func() time.Time

		maxRetries       int
		defaultPageLimit int
		maxPageLimit     int
		dispatchTimeout  time.Duration
		casAttempts      int
	}
)

func NewNotifyService(
	repo NotifyRepository,
	prefs PreferenceRepository,
	log *zap.Logger,
	opts ...Option,
) (*NotifyService, error) {
	s := &NotifyService{
		repo:             repo,
		prefs:            prefs,
		log:              log,
		now:              func() time.Time { return time.Now().UTC() },
		maxRetries:       entity.DefaultMaxRetries,
		defaultPageLimit: entity.DefaultPageLimit,
		maxPageLimit:     entity.MaxPageLimit,
		dispatchTimeout:  _defaultDispatchTimeout,
		casAttempts:      _defaultCASAttempts,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("service.NewNotifyService: %w", err)
	}
	return s, nil
}

func (s *NotifyService) logSlowOperation(ctx context.Context, op string, start time.Time, fields ...zap.Field) {
	duration := time.Since(start)
	if duration > _slowOperationThreshold {
		fields = append(fields, zap.String("op", op), zap.Duration("duration", duration))
		logger.Ctx(ctx, s.log).Warn("slow operation detected", fields...)
	}
}
