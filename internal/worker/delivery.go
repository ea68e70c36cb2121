package worker

import (
	"context"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/metrics"
	"artnotifier/pkg/storage/postgres"

	"go.uber.org/zap"
)

const _deliveryRoutingPrefix = "deliver."

// RoutingKey is the delivery exchange key a channel adapter binds to.
func RoutingKey(channel entity.Channel) string {
	return _deliveryRoutingPrefix + channel.String()
}

const _reportTimeoutReason = "delivery report timed out"

// DeliverDue picks pending notifications whose schedule has passed. In-app
// notifications are delivered by being in the inbox, so they move to sent
// here. Other channels are handed off to their adapter: the record keeps
// status pending with lease_until set, which hides it from later sweeps
// until a delivery report settles it or the lease runs out. An expired
// hand-off counts as a failed attempt, so the retry budget bounds how often
// a record is published.
func (w *Worker) DeliverDue(ctx context.Context) (*SweepStats, error) {
	const op = "worker.Worker.DeliverDue"

	start := time.Now()
	stats := &SweepStats{}

	err := w.tm.ExecuteInTransaction(ctx, "deliver_due", func(tx postgres.QueryExecuter) error {
		now := w.now()

		due, err := w.store.GetDue(ctx, tx, now, w.batchSize)
		if err != nil {
			return err
		}
		stats.Picked = len(due)

		for _, n := range due {
			if n.LeaseExpired(now) {
				if err = w.expire(ctx, tx, n, now); err != nil {
					stats.Failed++
					w.log.Error("settle expired hand-off", zap.String("id", n.ID.String()), zap.Error(err))
					continue
				}
				stats.Expired++
				continue
			}

			var handled bool
			if n.Channel == entity.ChannelInApp {
				handled, err = w.markSent(ctx, tx, n, now)
			} else {
				handled, err = w.publish(ctx, tx, n, now)
			}
			switch {
			case err != nil:
				stats.Failed++
				w.log.Error("deliver notification",
					zap.String("id", n.ID.String()),
					zap.String("channel", n.Channel.String()),
					zap.Error(err),
				)
			case handled:
				stats.Processed++
			default:
				stats.Skipped++
			}
		}
		return nil
	})

	stats.Duration = time.Since(start)
	metrics.RecordSweep("delivery", stats.Picked)

	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}

	if stats.Picked > 0 {
		w.log.Info("delivery sweep completed",
			zap.Int("picked", stats.Picked),
			zap.Int("processed", stats.Processed),
			zap.Int("skipped", stats.Skipped),
			zap.Int("expired", stats.Expired),
			zap.Int("failed", stats.Failed),
			zap.Duration("duration", stats.Duration),
		)
	}
	return stats, nil
}

func (w *Worker) markSent(ctx context.Context, tx postgres.QueryExecuter, n entity.Notification, now time.Time) (bool, error) {
	next, changed, err := entity.MarkSent(n, now)
	if err != nil || !changed {
		return false, err
	}

	ok, err := w.store.CompareAndSwap(ctx, tx, n, next)
	if err != nil {
		metrics.RecordTransition("sent", "error")
		return false, err
	}
	if !ok {
		metrics.RecordTransition("sent", "conflict")
		return false, nil
	}
	metrics.RecordTransition("sent", "applied")
	return true, nil
}

// expire records a hand-off whose adapter never reported back as a failed
// attempt. The retry sweeper requeues it while budget remains.
func (w *Worker) expire(ctx context.Context, tx postgres.QueryExecuter, n entity.Notification, now time.Time) error {
	next, changed, err := entity.MarkFailed(n, _reportTimeoutReason, now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	ok, err := w.store.CompareAndSwap(ctx, tx, n, next)
	if err != nil {
		metrics.RecordTransition("failed", "error")
		return err
	}
	if !ok {
		metrics.RecordTransition("failed", "conflict")
		return nil
	}
	metrics.RecordTransition("failed", "applied")
	return nil
}

// publish hands n to its channel adapter. The row lease is written in the
// sweep transaction; the Redis lease additionally stops a second publish if
// that transaction fails to commit after the broker accepted the message.
func (w *Worker) publish(ctx context.Context, tx postgres.QueryExecuter, n entity.Notification, now time.Time) (bool, error) {
	acquired, err := w.leases.AcquireLease(ctx, n.ID, w.leaseTTL)
	if err != nil {
		// without a lease we cannot tell whether another sweep owns it
		return false, fmt.Errorf("acquire lease: %w", err)
	}
	if !acquired {
		return false, nil
	}

	handed, changed, err := entity.HandOff(n, now.Add(w.leaseTTL), now)
	if err == nil && changed {
		var ok bool
		ok, err = w.store.CompareAndSwap(ctx, tx, n, handed)
		if err == nil && !ok {
			changed = false
		}
	}
	if err != nil || !changed {
		w.releaseLease(ctx, n)
		if err != nil {
			return false, fmt.Errorf("hand off: %w", err)
		}
		return false, nil
	}

	pubErr := w.publisher.Publish(ctx, RoutingKey(n.Channel), n.ID.String(), handed)
	if pubErr == nil {
		return true, nil
	}

	w.releaseLease(ctx, n)

	next, changed, err := entity.MarkFailed(handed, "publish: "+pubErr.Error(), now)
	if err != nil {
		return false, err
	}
	if changed {
		if _, err = w.store.CompareAndSwap(ctx, tx, handed, next); err != nil {
			return false, fmt.Errorf("record publish failure: %w", err)
		}
		metrics.RecordTransition("failed", "applied")
	}
	return false, fmt.Errorf("publish: %w", pubErr)
}

func (w *Worker) releaseLease(ctx context.Context, n entity.Notification) {
	if err := w.leases.ReleaseLease(ctx, n.ID); err != nil {
		w.log.Warn("release lease", zap.String("id", n.ID.String()), zap.Error(err))
	}
}
