package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/retry"
)

const (
	_publishTimeout = 5 * time.Second
	_heartbeat      = 10 * time.Second
)

var (
	errConnectionClosed = errors.New("connection closed")

	dialConfig = amqp.DialConfig
)

// ErrPermanent marks a handler error that retrying cannot fix. Such
// deliveries are rejected without requeue and end up in the dead-letter
// exchange when one is configured.
var ErrPermanent = errors.New("permanent failure")

func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// Dial connects to the broker, retrying per strategy.
func Dial(url, connectionName string, strategy retry.Strategy) (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(connectionName)

	var conn *amqp.Connection
	err := retry.Do(func() error {
		c, err := dialConfig(url, amqp.Config{
			Heartbeat:  _heartbeat,
			Properties: props,
		})
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, strategy)
	if err != nil {
		return nil, fmt.Errorf("rabbit.Dial: %w", err)
	}
	return conn, nil
}

func DeclareTopic(ch *amqp.Channel, name string) error {
	if err := ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbit.DeclareTopic %s: %w", name, err)
	}
	return nil
}

// Publisher sends persistent JSON messages to one topic exchange. A closed
// channel is reopened on the next Publish while the connection is alive.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	appID    string
	reopen   retry.Strategy
}

func NewPublisher(conn *amqp.Connection, exchange, appID string, reopen retry.Strategy) (*Publisher, error) {
	p := &Publisher{conn: conn, exchange: exchange, appID: appID, reopen: reopen}
	if err := p.openChannel(); err != nil {
		return nil, fmt.Errorf("rabbit.NewPublisher: %w", err)
	}
	return p, nil
}

func (p *Publisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err = DeclareTopic(ch, p.exchange); err != nil {
		_ = ch.Close()
		return err
	}
	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("confirm mode: %w", err)
	}
	p.ch = ch
	return nil
}

// ensureChannel must be called with mu held.
func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	if p.conn.IsClosed() {
		return errConnectionClosed
	}
	return retry.Do(func() error {
		if p.conn.IsClosed() {
			return errConnectionClosed
		}
		return p.openChannel()
	}, p.reopen)
}

// Publish marshals payload to JSON and waits for the broker confirm.
func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, payload any) error {
	const op = "rabbit.Publisher.Publish"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, _publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.ensureChannel(); err != nil {
		return fmt.Errorf("%s: reopen channel: %w", op, err)
	}

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		AppId:        p.appID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: wait confirm: %w", op, err)
	}
	if !acked {
		return fmt.Errorf("%s: broker nacked %s", op, routingKey)
	}
	return nil
}

func (p *Publisher) IsConnected() bool {
	return p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed()
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
