package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/logger"
	"artnotifier/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	_outcomeCreated    = "created"
	_outcomeSuppressed = "suppressed"
	_outcomeError      = "error"
)

type (
	DispatchRequest struct {
		UserID   uuid.UUID
		Channel  entity.Channel
		Category entity.Category
		Title    string
		Message  string
		Priority entity.Priority
		Data     map[string]any
		// ScheduledFor delays delivery; zero or past means now.
		ScheduledFor time.Time
	}

	// DispatchResult carries the created record, or Suppressed=true when the
	// recipient has opted out of the channel/category pair.
	DispatchResult struct {
		Notification *entity.Notification
		Suppressed   bool
	}
)

// Dispatch consults the recipient's preferences and, unless they opt out,
// persists a pending notification. A suppressed dispatch is not an error.
// When preferences cannot be read the dispatch proceeds as if enabled.
func (s *NotifyService) Dispatch(ctx context.Context, req DispatchRequest) (*DispatchResult, error) {
	const op = "service.NotifyService.Dispatch"

	log := logger.Ctx(ctx, s.log)
	start := time.Now()

	defer s.logSlowOperation(ctx, op, start,
		zap.String("user_id", req.UserID.String()),
		zap.String("channel", req.Channel.String()),
	)

	now := s.now()
	n := entity.Notification{
		UserID:       req.UserID,
		Channel:      req.Channel,
		Category:     req.Category,
		Title:        req.Title,
		Message:      req.Message,
		Data:         req.Data,
		Status:       entity.StatusPending,
		Priority:     req.Priority,
		ScheduledFor: req.ScheduledFor,
		MaxRetries:   s.maxRetries,
		CreatedAt:    now,
	}
	if n.Priority == "" {
		n.Priority = entity.PriorityNormal
	}
	if n.ScheduledFor.Before(now) {
		n.ScheduledFor = now
	}

	if err := n.Validate(); err != nil {
		metrics.RecordDispatch(req.Channel.String(), req.Category.String(), _outcomeError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	if !s.allowed(ctx, req.UserID, req.Channel, req.Category) {
		log.Debug("dispatch suppressed by preferences",
			zap.String("op", op),
			zap.String("user_id", req.UserID.String()),
			zap.String("channel", req.Channel.String()),
			zap.String("category", req.Category.String()),
		)
		metrics.RecordDispatch(req.Channel.String(), req.Category.String(), _outcomeSuppressed)
		return &DispatchResult{Suppressed: true}, nil
	}

	created, err := s.repo.Create(ctx, nil, n)
	if err != nil {
		log.Error("create notification failed", zap.String("op", op), zap.Error(err))
		metrics.RecordDispatch(req.Channel.String(), req.Category.String(), _outcomeError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordDispatch(req.Channel.String(), req.Category.String(), _outcomeCreated)
	log.Info("notification dispatched",
		zap.String("op", op),
		zap.String("id", created.ID.String()),
		zap.String("user_id", created.UserID.String()),
		zap.String("category", created.Category.String()),
		zap.Duration("duration", time.Since(start)),
	)

	return &DispatchResult{Notification: created}, nil
}

// allowed fails open: a preference lookup error or a missing user lets the
// notification through and is only logged.
func (s *NotifyService) allowed(ctx context.Context, userID uuid.UUID, channel entity.Channel, category entity.Category) bool {
	prefs, err := s.prefs.GetPreferences(ctx, nil, userID)
	if err != nil {
		level := zap.WarnLevel
		if errors.Is(err, entity.ErrUserNotFound) {
			level = zap.DebugLevel
		}
		logger.Ctx(ctx, s.log).Check(level, "preference lookup failed, dispatching anyway").
			Write(zap.String("user_id", userID.String()), zap.Error(err))
		return true
	}
	return prefs.IsEnabled(channel, category)
}

func (s *NotifyService) NotifyWelcome(ctx context.Context, userID uuid.UUID) {
	s.notify(ctx, userID, welcomeTemplate, "", nil)
}

func (s *NotifyService) NotifyAnalysisComplete(ctx context.Context, userID uuid.UUID, artworkName string) {
	s.notify(ctx, userID, analysisCompleteTemplate, artworkName, map[string]any{"artworkName": artworkName})
}

func (s *NotifyService) NotifyAnalysisFailed(ctx context.Context, userID uuid.UUID, artworkName, reason string) {
	s.notify(ctx, userID, analysisFailedTemplate, artworkName, map[string]any{
		"artworkName": artworkName,
		"error":       reason,
	})
}

func (s *NotifyService) NotifyArtworkAdded(ctx context.Context, userID uuid.UUID, artworkName string) {
	s.notify(ctx, userID, artworkAddedTemplate, artworkName, map[string]any{"artworkName": artworkName})
}

func (s *NotifyService) NotifySecurityAlert(ctx context.Context, userID uuid.UUID, kind SecurityAlertKind, details string) {
	s.notify(ctx, userID, securityAlertTemplate(kind, details), "", map[string]any{
		"alertType": string(kind),
		"details":   details,
	})
}

func (s *NotifyService) NotifyAccountUpdate(ctx context.Context, userID uuid.UUID, kind AccountUpdateKind) {
	s.notify(ctx, userID, accountUpdateTemplate(kind), "", map[string]any{"updateType": string(kind)})
}

// notify is the fire-and-forget path used by domain events: failures are
// logged and never surface to the caller.
func (s *NotifyService) notify(ctx context.Context, userID uuid.UUID, t template, subject string, data map[string]any) {
	title, message := t.render(subject)

	_, err := s.Dispatch(ctx, DispatchRequest{
		UserID:   userID,
		Channel:  entity.ChannelInApp,
		Category: t.category,
		Title:    title,
		Message:  message,
		Priority: t.priority,
		Data:     data,
	})
	if err != nil {
		logger.Ctx(ctx, s.log).Error("event notification dropped",
			zap.String("user_id", userID.String()),
			zap.String("category", t.category.String()),
			zap.Error(err),
		)
	}
}
