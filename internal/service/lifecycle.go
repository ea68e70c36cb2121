package service

import (
	"context"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/logger"
	"artnotifier/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errCASExhausted = fmt.Errorf("concurrent updates did not settle: %w", entity.ErrConflictingData)

type transitionFunc func(n entity.Notification, now time.Time) (entity.Notification, bool, error)

// applyTransition loads the record, runs the pure transition and writes the
// result with a compare-and-swap on (status, retry_count). A lost race
// reloads and retries up to casAttempts times.
func (s *NotifyService) applyTransition(
	ctx context.Context,
	name string,
	load func(ctx context.Context) (*entity.Notification, error),
	transition transitionFunc,
) (*entity.Notification, error) {
	for attempt := 0; attempt < s.casAttempts; attempt++ {
		current, err := load(ctx)
		if err != nil {
			metrics.RecordTransition(name, _outcomeError)
			return nil, err
		}

		next, changed, err := transition(*current, s.now())
		if err != nil {
			metrics.RecordTransition(name, "rejected")
			return nil, err
		}
		if !changed {
			metrics.RecordTransition(name, "noop")
			return current, nil
		}

		ok, err := s.repo.CompareAndSwap(ctx, nil, *current, next)
		if err != nil {
			metrics.RecordTransition(name, _outcomeError)
			return nil, err
		}
		if ok {
			metrics.RecordTransition(name, "applied")
			return &next, nil
		}

		logger.Ctx(ctx, s.log).Debug("transition lost race, reloading",
			zap.String("transition", name),
			zap.String("id", current.ID.String()),
			zap.Int("attempt", attempt+1),
		)
	}

	metrics.RecordTransition(name, "conflict")
	return nil, errCASExhausted
}

func (s *NotifyService) byID(id uuid.UUID) func(ctx context.Context) (*entity.Notification, error) {
	return func(ctx context.Context) (*entity.Notification, error) {
		return s.repo.GetByID(ctx, nil, id)
	}
}

func (s *NotifyService) byOwner(id, owner uuid.UUID) func(ctx context.Context) (*entity.Notification, error) {
	return func(ctx context.Context) (*entity.Notification, error) {
		return s.repo.GetByIDAndOwner(ctx, nil, id, owner)
	}
}

// MarkRead marks one of owner's notifications read. A record belonging to
// someone else is reported as not found.
func (s *NotifyService) MarkRead(ctx context.Context, id, owner uuid.UUID) (*entity.Notification, error) {
	const op = "service.NotifyService.MarkRead"

	start := time.Now()
	defer s.logSlowOperation(ctx, op, start, zap.String("id", id.String()))

	n, err := s.applyTransition(ctx, "read", s.byOwner(id, owner), entity.MarkRead)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkSent confirms delivery. Repeated confirmations are no-ops.
func (s *NotifyService) MarkSent(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	const op = "service.NotifyService.MarkSent"

	n, err := s.applyTransition(ctx, "sent", s.byID(id), entity.MarkSent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Ctx(ctx, s.log).Debug("notification sent", zap.String("id", id.String()))
	return n, nil
}

// MarkFailed records a failed delivery attempt with its reason.
func (s *NotifyService) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (*entity.Notification, error) {
	const op = "service.NotifyService.MarkFailed"

	n, err := s.applyTransition(ctx, "failed", s.byID(id),
		func(n entity.Notification, now time.Time) (entity.Notification, bool, error) {
			return entity.MarkFailed(n, reason, now)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := logger.Ctx(ctx, s.log)
	if n.RetryCount >= n.MaxRetries {
		log.Warn("notification retries exhausted",
			zap.String("id", id.String()),
			zap.Int("retry_count", n.RetryCount),
			zap.String("reason", reason),
		)
	} else {
		log.Info("notification delivery failed",
			zap.String("id", id.String()),
			zap.Int("retry_count", n.RetryCount),
			zap.String("reason", reason),
		)
	}
	return n, nil
}

// Requeue returns a failed record with remaining budget to pending.
func (s *NotifyService) Requeue(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	const op = "service.NotifyService.Requeue"

	n, err := s.applyTransition(ctx, "requeue", s.byID(id), entity.Requeue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkAllRead marks every unread notification of owner read and returns
// how many changed. Calling it again returns 0.
func (s *NotifyService) MarkAllRead(ctx context.Context, owner uuid.UUID) (int64, error) {
	const op = "service.NotifyService.MarkAllRead"

	start := time.Now()
	defer s.logSlowOperation(ctx, op, start, zap.String("user_id", owner.String()))

	affected, err := s.repo.MarkAllRead(ctx, nil, owner, s.now())
	if err != nil {
		metrics.RecordTransition("read_all", _outcomeError)
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordTransition("read_all", "applied")
	logger.Ctx(ctx, s.log).Info("notifications marked read",
		zap.String("user_id", owner.String()),
		zap.Int64("count", affected),
	)
	return affected, nil
}

// Delete hard-deletes one of owner's notifications.
func (s *NotifyService) Delete(ctx context.Context, id, owner uuid.UUID) error {
	const op = "service.NotifyService.Delete"

	if err := s.repo.Delete(ctx, nil, id, owner); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Ctx(ctx, s.log).Info("notification deleted",
		zap.String("id", id.String()),
		zap.String("user_id", owner.String()),
	)
	return nil
}
