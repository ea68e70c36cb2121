package entity

import (
	"fmt"
	"time"
)

// The functions below are the notification state machine. Each takes the
// current record by value and returns the next one plus whether anything
// changed, so callers can skip the write for no-op transitions.
//
//	pending -> sent -> read
//	pending -> failed -> pending (requeue, while retries remain)
//	any     -> read
//
// Every transition that changes the record ends a pending hand-off.

// MarkSent moves a pending record to sent. Repeated delivery confirmations
// on a sent or read record are no-ops.
func MarkSent(n Notification, now time.Time) (Notification, bool, error) {
	switch n.Status {
	case StatusSent, StatusRead:
		return n, false, nil
	case StatusPending:
	default:
		return n, false, fmt.Errorf("mark sent from %s: %w", n.Status, ErrInvalidTransition)
	}

	n.Status = StatusSent
	n.SentAt = &now
	n.UpdatedAt = now
	n.LeaseUntil = nil
	return n, true, nil
}

// MarkRead moves any record to read. The first ReadAt stamp is kept.
func MarkRead(n Notification, now time.Time) (Notification, bool, error) {
	if n.Status == StatusRead {
		return n, false, nil
	}

	n.Status = StatusRead
	n.ReadAt = &now
	n.UpdatedAt = now
	n.LeaseUntil = nil
	return n, true, nil
}

// MarkFailed records a failed delivery attempt. RetryCount never exceeds
// MaxRetries: once the budget is spent further failures are no-ops.
func MarkFailed(n Notification, reason string, now time.Time) (Notification, bool, error) {
	switch n.Status {
	case StatusPending, StatusFailed:
	default:
		return n, false, fmt.Errorf("mark failed from %s: %w", n.Status, ErrInvalidTransition)
	}

	if n.RetryCount >= n.MaxRetries {
		if n.Status == StatusFailed {
			return n, false, nil
		}
		// pending with no budget left (maxRetries=0 or a requeue race)
		n.Status = StatusFailed
		n.RetryCount = n.MaxRetries
		n.ErrorMessage = reason
		n.UpdatedAt = now
		n.LeaseUntil = nil
		return n, true, nil
	}

	n.Status = StatusFailed
	n.RetryCount++
	n.ErrorMessage = reason
	n.UpdatedAt = now
	n.LeaseUntil = nil
	return n, true, nil
}

// Requeue puts a failed record with retry budget back to pending.
func Requeue(n Notification, now time.Time) (Notification, bool, error) {
	switch n.Status {
	case StatusPending:
		return n, false, nil
	case StatusFailed:
	default:
		return n, false, fmt.Errorf("requeue from %s: %w", n.Status, ErrInvalidTransition)
	}

	if n.RetryCount >= n.MaxRetries {
		return n, false, fmt.Errorf("requeue %s: %w", n.ID, ErrRetryExhausted)
	}

	n.Status = StatusPending
	n.UpdatedAt = now
	n.LeaseUntil = nil
	return n, true, nil
}

// HandOff records that a pending record was passed to its channel adapter
// and waits for a delivery report until until. A record already under a
// live hand-off is left alone.
func HandOff(n Notification, until, now time.Time) (Notification, bool, error) {
	if n.Status != StatusPending {
		return n, false, fmt.Errorf("hand off from %s: %w", n.Status, ErrInvalidTransition)
	}
	if n.HandedOff(now) {
		return n, false, nil
	}

	n.LeaseUntil = &until
	n.UpdatedAt = now
	return n, true, nil
}
