package amqp

import (
	"context"
	"errors"
	"fmt"

	"artnotifier/internal/entity"
	"artnotifier/pkg/logger"
	"artnotifier/pkg/rabbit"

	"github.com/google/uuid"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ReportHandler applies delivery reports from channel adapters to the
// notification lifecycle.
type ReportHandler struct {
	tracker DeliveryTracker
	dedup   Deduper
	leases  LeaseReleaser
	log     *zap.Logger
}

func NewReportHandler(tracker DeliveryTracker, dedup Deduper, leases LeaseReleaser, log *zap.Logger) *ReportHandler {
	return &ReportHandler{tracker: tracker, dedup: dedup, leases: leases, log: log}
}

func (h *ReportHandler) Handle(ctx context.Context, msg amqp091.Delivery) error {
	const op = "amqp.ReportHandler.Handle"

	var report DeliveryReport
	if err := decode(msg.Body, &report); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if report.NotificationID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, rabbit.Permanent(errors.New("missing notificationId")))
	}

	id := messageID(report.ReportID, msg.MessageId)
	ctx = logger.SetRequestID(ctx, id)
	log := logger.Ctx(ctx, h.log).With(zap.String("notification_id", report.NotificationID.String()))

	if id != "" && !h.dedup.AcquireOnce(ctx, _reportsScope, id) {
		log.Debug("duplicate report skipped")
		return nil
	}

	err := h.apply(ctx, report, reportStatus(report, msg.RoutingKey))
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrInvalidTransition):
		// late report for a record that already moved on
		log.Warn("delivery report ignored", zap.Error(err))
		err = nil
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrInvalidData):
		err = rabbit.Permanent(err)
	default:
		if id != "" {
			if fErr := h.dedup.ForgetEvent(ctx, _reportsScope, id); fErr != nil {
				log.Warn("forget dedup marker", zap.String("report_id", id), zap.Error(fErr))
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if relErr := h.leases.ReleaseLease(ctx, report.NotificationID); relErr != nil {
		log.Warn("release lease", zap.Error(relErr))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (h *ReportHandler) apply(ctx context.Context, report DeliveryReport, status entity.Status) error {
	switch status {
	case entity.StatusSent:
		_, err := h.tracker.MarkSent(ctx, report.NotificationID)
		return err
	case entity.StatusFailed:
		reason := report.Error
		if reason == "" {
			reason = "delivery failed"
		}
		_, err := h.tracker.MarkFailed(ctx, report.NotificationID, reason)
		return err
	default:
		return fmt.Errorf("report status %q: %w", status, entity.ErrInvalidData)
	}
}
