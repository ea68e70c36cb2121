package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"artnotifier/internal/entity"
	"artnotifier/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	_notificationsTable = "notifications"
	_usersTable         = "users"
)

var notificationColumns = []string{
	"id", "user_id", "channel", "category", "title", "message", "data",
	"status", "priority", "scheduled_for", "sent_at", "read_at",
	"retry_count", "max_retries", "error_message", "created_at", "updated_at",
	"lease_until",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(scanner rowScanner) (*entity.Notification, error) {
	var (
		n        entity.Notification
		data     []byte
		sentAt   pgtype.Timestamptz
		readAt     pgtype.Timestamptz
		errorMsg   pgtype.Text
		leaseUntil pgtype.Timestamptz
	)

	err := scanner.Scan(
		&n.ID,
		&n.UserID,
		&n.Channel,
		&n.Category,
		&n.Title,
		&n.Message,
		&data,
		&n.Status,
		&n.Priority,
		&n.ScheduledFor,
		&sentAt,
		&readAt,
		&n.RetryCount,
		&n.MaxRetries,
		&errorMsg,
		&n.CreatedAt,
		&n.UpdatedAt,
		&leaseUntil,
	)
	if err != nil {
		return nil, err
	}

	if len(data) > 0 {
		if err = json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	if n.Data == nil {
		n.Data = map[string]any{}
	}
	if sentAt.Valid {
		t := sentAt.Time.UTC()
		n.SentAt = &t
	}
	if readAt.Valid {
		t := readAt.Time.UTC()
		n.ReadAt = &t
	}
	if errorMsg.Valid {
		n.ErrorMessage = errorMsg.String
	}
	if leaseUntil.Valid {
		t := leaseUntil.Time.UTC()
		n.LeaseUntil = &t
	}

	return &n, nil
}

func collectNotifications(rows pgx.Rows) ([]entity.Notification, error) {
	defer rows.Close()

	var out []entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// applyFilter adds the owner-scoped predicates shared by list and count.
func applyFilter(where squirrel.And, f entity.Filter) squirrel.And {
	where = append(where, squirrel.Eq{"user_id": f.UserID})
	switch {
	case f.Unread:
		where = append(where, squirrel.NotEq{"status": entity.StatusRead})
	case f.Status != "":
		where = append(where, squirrel.Eq{"status": f.Status})
	}
	if f.Category != "" {
		where = append(where, squirrel.Eq{"category": f.Category})
	}
	if f.Channel != "" {
		where = append(where, squirrel.Eq{"channel": f.Channel})
	}
	return where
}

// mapError translates driver errors into entity sentinels.
func mapError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	case postgres.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, entity.ErrConflictingData)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	case postgres.IsUnavailable(err):
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
