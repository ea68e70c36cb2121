package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"artnotifier/internal/config"
	"artnotifier/internal/entity"
	"artnotifier/internal/service"
	"artnotifier/pkg/rabbit"

	"github.com/google/uuid"
)

//go:generate mockgen -source=rabbit.go -destination=mocks/mock_rabbit.go -package=mocks

// Routing keys on the events exchange.
const (
	RoutingUserRegistered    = "user.registered"
	RoutingAnalysisCompleted = "analysis.completed"
	RoutingAnalysisFailed    = "analysis.failed"
	RoutingArtworkAdded      = "artwork.added"
	RoutingSecurityAlert     = "security.alert"
	RoutingAccountUpdated    = "account.updated"

	RoutingDeliveryReports = "notification.delivery.*"
	_deliveryReportPrefix  = "notification.delivery."

	_eventsScope  = "events"
	_reportsScope = "reports"
)

type (
	EventNotifier interface {
		NotifyWelcome(ctx context.Context, userID uuid.UUID)
		NotifyAnalysisComplete(ctx context.Context, userID uuid.UUID, artworkName string)
		NotifyAnalysisFailed(ctx context.Context, userID uuid.UUID, artworkName, reason string)
		NotifyArtworkAdded(ctx context.Context, userID uuid.UUID, artworkName string)
		NotifySecurityAlert(ctx context.Context, userID uuid.UUID, kind service.SecurityAlertKind, details string)
		NotifyAccountUpdate(ctx context.Context, userID uuid.UUID, kind service.AccountUpdateKind)
	}

	DeliveryTracker interface {
		MarkSent(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
		MarkFailed(ctx context.Context, id uuid.UUID, reason string) (*entity.Notification, error)
	}

	Deduper interface {
		AcquireOnce(ctx context.Context, scope, eventID string) bool
		ForgetEvent(ctx context.Context, scope, eventID string) error
	}

	LeaseReleaser interface {
		ReleaseLease(ctx context.Context, id uuid.UUID) error
	}
)

// Event is the envelope other services publish on the events exchange.
// Only the fields relevant to the routing key are set.
type Event struct {
	EventID     string    `json:"eventId"`
	UserID      uuid.UUID `json:"userId"`
	ArtworkName string    `json:"artworkName,omitempty"`
	Error       string    `json:"error,omitempty"`
	AlertType   string    `json:"alertType,omitempty"`
	Details     string    `json:"details,omitempty"`
	UpdateType  string    `json:"updateType,omitempty"`
}

// DeliveryReport is sent back by a channel adapter after an attempt.
type DeliveryReport struct {
	ReportID       string        `json:"reportId,omitempty"`
	NotificationID uuid.UUID     `json:"notificationId"`
	Status         entity.Status `json:"status"`
	Error          string        `json:"error,omitempty"`
}

func EventRoutingKeys() []string {
	return []string{
		RoutingUserRegistered,
		RoutingAnalysisCompleted,
		RoutingAnalysisFailed,
		RoutingArtworkAdded,
		RoutingSecurityAlert,
		RoutingAccountUpdated,
	}
}

func EventsConsumerConfig(cfg *config.Broker) rabbit.ConsumerConfig {
	return rabbit.ConsumerConfig{
		Exchange:           cfg.EventsExchange,
		Queue:              cfg.EventsQueue,
		RoutingKeys:        EventRoutingKeys(),
		DeadLetterExchange: cfg.DeadLetterExchange,
		Prefetch:           cfg.Prefetch,
		HandlerTimeout:     cfg.HandlerTimeout,
	}
}

func ReportsConsumerConfig(cfg *config.Broker) rabbit.ConsumerConfig {
	return rabbit.ConsumerConfig{
		Exchange:           cfg.DeliveryExchange,
		Queue:              cfg.ReportsQueue,
		RoutingKeys:        []string{RoutingDeliveryReports},
		DeadLetterExchange: cfg.DeadLetterExchange,
		Prefetch:           cfg.Prefetch,
		HandlerTimeout:     cfg.HandlerTimeout,
	}
}

// decode rejects malformed bodies permanently; redelivering them cannot help.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return rabbit.Permanent(fmt.Errorf("decode: %w", err))
	}
	return nil
}

// reportStatus prefers the status in the body and falls back to the last
// routing key segment.
func reportStatus(r DeliveryReport, routingKey string) entity.Status {
	if r.Status != "" {
		return r.Status
	}
	return entity.Status(strings.TrimPrefix(routingKey, _deliveryReportPrefix))
}

func messageID(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	return fallback
}
