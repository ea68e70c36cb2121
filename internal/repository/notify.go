package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type NotifyRepository struct {
	db *postgres.Postgres
}

func NewNotifyRepository(db *postgres.Postgres) *NotifyRepository {
	return &NotifyRepository{db: db}
}

func (r *NotifyRepository) Create(
	ctx context.Context,
	qe postgres.QueryExecuter,
	n entity.Notification,
) (*entity.Notification, error) {
	const op = "repository.NotifyRepository.Create"

	if n.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%s: new v7 uuid: %w", op, err)
		}
		n.ID = id
	}

	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = n.CreatedAt
	if n.ScheduledFor.IsZero() {
		n.ScheduledFor = n.CreatedAt
	}
	if n.Data == nil {
		n.Data = map[string]any{}
	}

	sql, args, err := r.insertQuery(n)
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err = r.exec(qe).Exec(ctx, sql, args...); err != nil {
		return nil, mapError(op, err)
	}

	return &n, nil
}

func (r *NotifyRepository) insertQuery(n entity.Notification) (string, []any, error) {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return "", nil, fmt.Errorf("encode data: %w", err)
	}

	var errorMsg *string
	if n.ErrorMessage != "" {
		errorMsg = &n.ErrorMessage
	}

	return r.db.Insert(_notificationsTable).
		Columns(notificationColumns...).
		Values(
			n.ID, n.UserID, n.Channel, n.Category, n.Title, n.Message, data,
			n.Status, n.Priority, n.ScheduledFor, n.SentAt, n.ReadAt,
			n.RetryCount, n.MaxRetries, errorMsg, n.CreatedAt, n.UpdatedAt,
			n.LeaseUntil,
		).
		ToSql()
}

// GetByID is unscoped; only background workers use it.
func (r *NotifyRepository) GetByID(ctx context.Context, qe postgres.QueryExecuter, id uuid.UUID) (*entity.Notification, error) {
	const op = "repository.NotifyRepository.GetByID"

	sql, args, err := r.db.Select(notificationColumns...).
		From(_notificationsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	n, err := scanNotification(r.exec(qe).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(op, err)
	}
	return n, nil
}

// GetByIDAndOwner returns ErrNotFound both for a missing id and for an id
// owned by someone else.
func (r *NotifyRepository) GetByIDAndOwner(
	ctx context.Context,
	qe postgres.QueryExecuter,
	id, owner uuid.UUID,
) (*entity.Notification, error) {
	const op = "repository.NotifyRepository.GetByIDAndOwner"

	sql, args, err := r.db.Select(notificationColumns...).
		From(_notificationsTable).
		Where(squirrel.Eq{"id": id, "user_id": owner}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	n, err := scanNotification(r.exec(qe).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(op, err)
	}
	return n, nil
}

func (r *NotifyRepository) List(
	ctx context.Context,
	qe postgres.QueryExecuter,
	filter entity.Filter,
	page entity.PageRequest,
) ([]entity.Notification, error) {
	const op = "repository.NotifyRepository.List"

	sql, args, err := r.listQuery(filter, page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := r.exec(qe).Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}

	items, err := collectNotifications(rows)
	if err != nil {
		return nil, mapError(op, err)
	}
	return items, nil
}

func (r *NotifyRepository) listQuery(filter entity.Filter, page entity.PageRequest) squirrel.SelectBuilder {
	return r.db.Select(notificationColumns...).
		From(_notificationsTable).
		Where(applyFilter(nil, filter)).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset())
}

func (r *NotifyRepository) Count(ctx context.Context, qe postgres.QueryExecuter, filter entity.Filter) (int64, error) {
	const op = "repository.NotifyRepository.Count"

	sql, args, err := r.countQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: building query: %w", op, err)
	}

	var total int64
	if err = r.exec(qe).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, mapError(op, err)
	}
	return total, nil
}

func (r *NotifyRepository) countQuery(filter entity.Filter) squirrel.SelectBuilder {
	return r.db.Select("COUNT(*)").
		From(_notificationsTable).
		Where(applyFilter(nil, filter))
}

// CompareAndSwap writes the lifecycle fields of next only if the stored row
// still has the status and retry count of prev. It reports whether the row
// was updated.
func (r *NotifyRepository) CompareAndSwap(
	ctx context.Context,
	qe postgres.QueryExecuter,
	prev, next entity.Notification,
) (bool, error) {
	const op = "repository.NotifyRepository.CompareAndSwap"

	sql, args, err := r.casQuery(prev, next).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: building query: %w", op, err)
	}

	res, err := r.exec(qe).Exec(ctx, sql, args...)
	if err != nil {
		return false, mapError(op, err)
	}
	return res.RowsAffected() == 1, nil
}

func (r *NotifyRepository) casQuery(prev, next entity.Notification) squirrel.UpdateBuilder {
	var errorMsg *string
	if next.ErrorMessage != "" {
		errorMsg = &next.ErrorMessage
	}

	return r.db.Update(_notificationsTable).
		Set("status", next.Status).
		Set("sent_at", next.SentAt).
		Set("read_at", next.ReadAt).
		Set("retry_count", next.RetryCount).
		Set("error_message", errorMsg).
		Set("updated_at", next.UpdatedAt).
		Set("lease_until", next.LeaseUntil).
		Where(squirrel.Eq{
			"id":          prev.ID,
			"user_id":     prev.UserID,
			"status":      prev.Status,
			"retry_count": prev.RetryCount,
		})
}

// MarkAllRead flips every unread record of owner in one statement and
// returns how many rows changed.
func (r *NotifyRepository) MarkAllRead(
	ctx context.Context,
	qe postgres.QueryExecuter,
	owner uuid.UUID,
	now time.Time,
) (int64, error) {
	const op = "repository.NotifyRepository.MarkAllRead"

	sql, args, err := r.markAllReadQuery(owner, now).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: building query: %w", op, err)
	}

	res, err := r.exec(qe).Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError(op, err)
	}
	return res.RowsAffected(), nil
}

func (r *NotifyRepository) markAllReadQuery(owner uuid.UUID, now time.Time) squirrel.UpdateBuilder {
	return r.db.Update(_notificationsTable).
		Set("status", entity.StatusRead).
		Set("read_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"user_id": owner}).
		Where(squirrel.NotEq{"status": entity.StatusRead})
}

func (r *NotifyRepository) Delete(ctx context.Context, qe postgres.QueryExecuter, id, owner uuid.UUID) error {
	const op = "repository.NotifyRepository.Delete"

	sql, args, err := r.db.Delete(_notificationsTable).
		Where(squirrel.Eq{"id": id, "user_id": owner}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	res, err := r.exec(qe).Exec(ctx, sql, args...)
	if err != nil {
		return mapError(op, err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	return nil
}

// GetDue locks up to limit pending records whose schedule has passed and
// that are not handed off under a live lease. Records whose lease ran out
// are returned so the caller can settle them. Call it inside a transaction
// so the row locks hold until commit.
func (r *NotifyRepository) GetDue(
	ctx context.Context,
	qe postgres.QueryExecuter,
	now time.Time,
	limit uint64,
) ([]entity.Notification, error) {
	const op = "repository.NotifyRepository.GetDue"

	if limit == 0 {
		return nil, fmt.Errorf("%s: limit must be > 0", op)
	}

	sql, args, err := r.dueQuery(now, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := r.exec(qe).Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}

	items, err := collectNotifications(rows)
	if err != nil {
		return nil, mapError(op, err)
	}
	return items, nil
}

func (r *NotifyRepository) dueQuery(now time.Time, limit uint64) squirrel.SelectBuilder {
	return r.db.Select(notificationColumns...).
		From(_notificationsTable).
		Where(squirrel.Eq{"status": entity.StatusPending}).
		Where(squirrel.LtOrEq{"scheduled_for": now}).
		Where(squirrel.Or{
			squirrel.Eq{"lease_until": nil},
			squirrel.LtOrEq{"lease_until": now},
		}).
		OrderBy("scheduled_for ASC").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED")
}

// GetRetryable returns failed records with retry budget left whose backoff
// (base * 2^(retry_count-1), counted from the last failure) has elapsed.
// Exhausted records never match.
func (r *NotifyRepository) GetRetryable(
	ctx context.Context,
	qe postgres.QueryExecuter,
	now time.Time,
	baseDelay time.Duration,
	limit uint64,
) ([]entity.Notification, error) {
	const op = "repository.NotifyRepository.GetRetryable"

	if limit == 0 {
		return nil, fmt.Errorf("%s: limit must be > 0", op)
	}

	sql, args, err := r.retryableQuery(now, baseDelay, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := r.exec(qe).Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}

	items, err := collectNotifications(rows)
	if err != nil {
		return nil, mapError(op, err)
	}
	return items, nil
}

func (r *NotifyRepository) retryableQuery(now time.Time, baseDelay time.Duration, limit uint64) squirrel.SelectBuilder {
	return r.db.Select(notificationColumns...).
		From(_notificationsTable).
		Where(squirrel.Eq{"status": entity.StatusFailed}).
		Where("retry_count < max_retries").
		Where(squirrel.Expr(
			"updated_at + make_interval(secs => ? * power(2, GREATEST(retry_count - 1, 0))) <= ?",
			baseDelay.Seconds(), now,
		)).
		OrderBy("updated_at ASC").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED")
}

func (r *NotifyRepository) exec(qe postgres.QueryExecuter) postgres.QueryExecuter {
	if qe != nil {
		return qe
	}
	return r.db
}
