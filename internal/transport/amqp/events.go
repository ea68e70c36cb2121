package amqp

import (
	"context"
	"errors"
	"fmt"

	"artnotifier/internal/service"
	"artnotifier/pkg/logger"
	"artnotifier/pkg/rabbit"

	"github.com/google/uuid"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errUnknownEvent = errors.New("unknown event")

// EventHandler turns domain events into inbox notifications. Events carrying
// an id (eventId or the AMQP message id) are processed at most once per
// dedup window.
type EventHandler struct {
	notifier EventNotifier
	dedup    Deduper
	log      *zap.Logger
}

func NewEventHandler(notifier EventNotifier, dedup Deduper, log *zap.Logger) *EventHandler {
	return &EventHandler{notifier: notifier, dedup: dedup, log: log}
}

func (h *EventHandler) Handle(ctx context.Context, msg amqp091.Delivery) error {
	const op = "amqp.EventHandler.Handle"

	var ev Event
	if err := decode(msg.Body, &ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ev.UserID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, rabbit.Permanent(errors.New("missing userId")))
	}

	id := messageID(ev.EventID, msg.MessageId)
	ctx = logger.SetRequestID(ctx, id)
	log := logger.Ctx(ctx, h.log).With(zap.String("routing_key", msg.RoutingKey))

	if id != "" && !h.dedup.AcquireOnce(ctx, _eventsScope, id) {
		log.Debug("duplicate event skipped", zap.String("event_id", id))
		return nil
	}

	if err := h.route(ctx, msg.RoutingKey, ev); err != nil {
		if id != "" {
			if fErr := h.dedup.ForgetEvent(ctx, _eventsScope, id); fErr != nil {
				log.Warn("forget dedup marker", zap.String("event_id", id), zap.Error(fErr))
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("event handled", zap.String("user_id", ev.UserID.String()))
	return nil
}

func (h *EventHandler) route(ctx context.Context, routingKey string, ev Event) error {
	switch routingKey {
	case RoutingUserRegistered:
		h.notifier.NotifyWelcome(ctx, ev.UserID)
	case RoutingAnalysisCompleted:
		h.notifier.NotifyAnalysisComplete(ctx, ev.UserID, ev.ArtworkName)
	case RoutingAnalysisFailed:
		h.notifier.NotifyAnalysisFailed(ctx, ev.UserID, ev.ArtworkName, ev.Error)
	case RoutingArtworkAdded:
		h.notifier.NotifyArtworkAdded(ctx, ev.UserID, ev.ArtworkName)
	case RoutingSecurityAlert:
		h.notifier.NotifySecurityAlert(ctx, ev.UserID, service.SecurityAlertKind(ev.AlertType), ev.Details)
	case RoutingAccountUpdated:
		h.notifier.NotifyAccountUpdate(ctx, ev.UserID, service.AccountUpdateKind(ev.UpdateType))
	default:
		return rabbit.Permanent(fmt.Errorf("%w: %s", errUnknownEvent, routingKey))
	}
	return nil
}
