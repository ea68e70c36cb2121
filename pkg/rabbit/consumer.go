package rabbit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artnotifier/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, msg amqp.Delivery) error

type ConsumerConfig struct {
	Exchange    string
	Queue       string
	RoutingKeys []string
	// DeadLetterExchange receives rejected deliveries; empty disables it.
	DeadLetterExchange string
	Prefetch           int
	HandlerTimeout     time.Duration
}

type Consumer struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	cfg     ConsumerConfig
	handler Handler
	log     *zap.Logger
}

func NewConsumer(conn *amqp.Connection, cfg ConsumerConfig, handler Handler, log *zap.Logger) (*Consumer, error) {
	const op = "rabbit.NewConsumer"

	if handler == nil {
		return nil, fmt.Errorf("%s: nil handler", op)
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 10 * time.Second
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: open channel: %w", op, err)
	}

	if err = declareTopology(ch, cfg); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("consumer initialized",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.Queue),
		zap.Strings("routing_keys", cfg.RoutingKeys),
	)

	return &Consumer{conn: conn, ch: ch, cfg: cfg, handler: handler, log: log}, nil
}

func declareTopology(ch *amqp.Channel, cfg ConsumerConfig) error {
	if err := DeclareTopic(ch, cfg.Exchange); err != nil {
		return err
	}

	var args amqp.Table
	if cfg.DeadLetterExchange != "" {
		if err := DeclareTopic(ch, cfg.DeadLetterExchange); err != nil {
			return err
		}
		dlq := cfg.Queue + ".dlq"
		if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare %s: %w", dlq, err)
		}
		if err := ch.QueueBind(dlq, "#", cfg.DeadLetterExchange, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", dlq, err)
		}
		args = amqp.Table{"x-dead-letter-exchange": cfg.DeadLetterExchange}
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", cfg.Queue, err)
	}
	for _, key := range cfg.RoutingKeys {
		if err := ch.QueueBind(cfg.Queue, key, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", cfg.Queue, key, err)
		}
	}

	if cfg.Prefetch > 0 {
		if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("qos: %w", err)
		}
	}
	return nil
}

// Run consumes until ctx is cancelled or the channel closes. Every delivery
// is acked or nacked exactly once.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbit.Consumer.Run: consume %s: %w", c.cfg.Queue, err)
	}

	c.log.Info("consumer started", zap.String("queue", c.cfg.Queue))

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Close()
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("rabbit.Consumer.Run: %s: delivery channel closed", c.cfg.Queue)
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg amqp.Delivery) {
	log := c.log.With(
		zap.String("queue", c.cfg.Queue),
		zap.String("routing_key", msg.RoutingKey),
		zap.String("message_id", msg.MessageId),
	)

	start := time.Now()
	defer func() {
		metrics.RecordMQConsumeLatency(c.cfg.Queue, msg.RoutingKey, time.Since(start))
		if r := recover(); r != nil {
			log.Error("handler panic recovered", zap.Any("panic", r))
			if err := msg.Nack(false, false); err != nil {
				log.Error("nack after panic failed", zap.Error(err))
			}
		}
	}()

	hctx, cancel := context.WithTimeout(ctx, c.cfg.HandlerTimeout)
	defer cancel()

	err := c.handler(hctx, msg)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Error("ack failed", zap.Error(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		log.Warn("rejecting message", zap.Error(err))
		if nackErr := msg.Nack(false, false); nackErr != nil {
			log.Error("nack failed", zap.Error(nackErr))
		}
	default:
		log.Error("handler failed, requeueing", zap.Error(err))
		requeue := !msg.Redelivered
		if nackErr := msg.Nack(false, requeue); nackErr != nil {
			log.Error("nack failed", zap.Error(nackErr))
		}
	}
}

func (c *Consumer) Close() error {
	if c.ch != nil && !c.ch.IsClosed() {
		return c.ch.Close()
	}
	return nil
}
