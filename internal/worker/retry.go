package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/metrics"
	"artnotifier/pkg/storage/postgres"

	"go.uber.org/zap"
)

// RequeueFailed moves failed notifications whose backoff has elapsed back
// to pending. Exhausted records are never selected.
func (w *Worker) RequeueFailed(ctx context.Context) (*SweepStats, error) {
	const op = "worker.Worker.RequeueFailed"

	start := time.Now()
	stats := &SweepStats{}

	err := w.tm.ExecuteInTransaction(ctx, "requeue_failed", func(tx postgres.QueryExecuter) error {
		now := w.now()

		failed, err := w.store.GetRetryable(ctx, tx, now, w.baseRetryDelay, w.batchSize)
		if err != nil {
			return err
		}
		stats.Picked = len(failed)

		for _, n := range failed {
			next, changed, err := entity.Requeue(n, now)
			if err != nil {
				if !errors.Is(err, entity.ErrRetryExhausted) {
					stats.Failed++
				} else {
					stats.Skipped++
				}
				continue
			}
			if !changed {
				stats.Skipped++
				continue
			}

			ok, err := w.store.CompareAndSwap(ctx, tx, n, next)
			switch {
			case err != nil:
				return err
			case ok:
				stats.Processed++
				metrics.RecordTransition("requeue", "applied")
			default:
				stats.Skipped++
				metrics.RecordTransition("requeue", "conflict")
			}
		}
		return nil
	})

	stats.Duration = time.Since(start)
	metrics.RecordSweep("retry", stats.Picked)

	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	if stats.Processed > 0 {
		w.log.Info("failed notifications requeued",
			zap.Int("requeued", stats.Processed),
			zap.Int("skipped", stats.Skipped),
			zap.Duration("duration", stats.Duration),
		)
	}
	return stats, nil
}
