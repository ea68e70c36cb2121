package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/storage/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=worker.go -destination=mocks/mock_worker.go -package=mocks

const (
	_defaultInterval       = 5 * time.Second
	_defaultBatchSize      = 50
	_defaultLeaseTTL       = 2 * time.Minute
	_defaultBaseRetryDelay = time.Minute
)

type (
	Store interface {
		GetDue(ctx context.Context, qe postgres.QueryExecuter, now time.Time, limit uint64) ([]entity.Notification, error)
		GetRetryable(ctx context.Context, qe postgres.QueryExecuter, now time.Time, baseDelay time.Duration, limit uint64) ([]entity.Notification, error)
		CompareAndSwap(ctx context.Context, qe postgres.QueryExecuter, prev, next entity.Notification) (bool, error)
	}

	Leaser interface {
		AcquireLease(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error)
		ReleaseLease(ctx context.Context, id uuid.UUID) error
	}

	Publisher interface {
		Publish(ctx context.Context, routingKey, messageID string, payload any) error
	}

	// Worker periodically hands due notifications to their channel and
	// puts failed ones with retry budget back in the queue.
	Worker struct {
		tm        postgres.Manager
		store     Store
		leases    Leaser
		publisher Publisher
		log       *zap.Logger
		now       func() time.Time

		interval       time.Duration
		batchSize      uint64
		leaseTTL       time.Duration
		baseRetryDelay time.Duration
	}

	SweepStats struct {
		Picked    int
		Processed int
		Skipped   int
		Failed    int
		// Expired counts hand-offs that ran out without a delivery report.
		Expired int
		Duration  time.Duration
	}
)

func New(
	tm postgres.Manager,
	store Store,
	leases Leaser,
	publisher Publisher,
	log *zap.Logger,
	opts ...Option,
) (*Worker, error) {
	w := &Worker{
		tm:             tm,
		store:          store,
		leases:         leases,
		publisher:      publisher,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
		interval:       _defaultInterval,
		batchSize:      _defaultBatchSize,
		leaseTTL:       _defaultLeaseTTL,
		baseRetryDelay: _defaultBaseRetryDelay,
	}

	for _, opt := range opts {
		opt(w)
	}

	if err := w.validate(); err != nil {
		return nil, fmt.Errorf("worker.New: %w", err)
	}
	return w, nil
}

// Run sweeps on every tick until ctx is cancelled. A failed sweep is logged
// and the loop carries on.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("worker started",
		zap.Duration("interval", w.interval),
		zap.Uint64("batch_size", w.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	if _, err := w.RequeueFailed(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.log.Error("retry sweep failed", zap.Error(err))
	}
	if _, err := w.DeliverDue(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.log.Error("delivery sweep failed", zap.Error(err))
	}
}
