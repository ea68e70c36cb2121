package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo() *NotifyRepository {
	return NewNotifyRepository(&postgres.Postgres{
		StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	})
}

func TestListQuery(t *testing.T) {
	r := newTestRepo()
	owner := uuid.New()

	sql, args, err := r.listQuery(entity.Filter{
		UserID:   owner,
		Status:   entity.StatusPending,
		Category: entity.CategoryWelcome,
		Channel:  entity.ChannelInApp,
	}, entity.PageRequest{Page: 3, Limit: 10}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM notifications WHERE (user_id = $1 AND status = $2 AND category = $3 AND channel = $4)")
	assert.Contains(t, sql, "ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 20")
	// squirrel.Eq resolves driver.Valuer, so UUIDs arrive as strings
	assert.Equal(t, []any{owner.String(), entity.StatusPending, entity.CategoryWelcome, entity.ChannelInApp}, args)
}

func TestCountQuery_Unread(t *testing.T) {
	r := newTestRepo()
	owner := uuid.New()

	sql, args, err := r.countQuery(entity.Filter{UserID: owner, Unread: true, Status: entity.StatusSent}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM notifications WHERE (user_id = $1 AND status <> $2)", sql)
	assert.Equal(t, []any{owner.String(), entity.StatusRead}, args)
}

func TestCASQuery(t *testing.T) {
	r := newTestRepo()
	now := time.Now().UTC()
	prev := entity.Notification{ID: uuid.New(), UserID: uuid.New(), Status: entity.StatusPending, RetryCount: 1}
	next := prev
	next.Status = entity.StatusFailed
	next.RetryCount = 2
	next.ErrorMessage = "timeout"
	next.UpdatedAt = now

	sql, args, err := r.casQuery(prev, next).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE notifications SET status = $1, sent_at = $2, read_at = $3, retry_count = $4, error_message = $5, updated_at = $6, "+
			"lease_until = $7 WHERE id = $8 AND retry_count = $9 AND status = $10 AND user_id = $11",
		sql)
	require.Len(t, args, 11)
	assert.Equal(t, entity.StatusFailed, args[0])
	assert.Equal(t, 2, args[3])
	assert.Nil(t, args[6])
	assert.Equal(t, prev.ID.String(), args[7])
	assert.Equal(t, 1, args[8])
	assert.Equal(t, entity.StatusPending, args[9])
	assert.Equal(t, prev.UserID.String(), args[10])
}

func TestMarkAllReadQuery(t *testing.T) {
	r := newTestRepo()
	owner := uuid.New()
	now := time.Now().UTC()

	sql, args, err := r.markAllReadQuery(owner, now).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE notifications SET status = $1, read_at = $2, updated_at = $3 WHERE user_id = $4 AND status <> $5",
		sql)
	assert.Equal(t, []any{entity.StatusRead, now, now, owner.String(), entity.StatusRead}, args)
}

func TestDueQuery(t *testing.T) {
	r := newTestRepo()
	now := time.Now().UTC()

	sql, args, err := r.dueQuery(now, 25).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE status = $1 AND scheduled_for <= $2 AND (lease_until IS NULL OR lease_until <= $3)")
	assert.Contains(t, sql, "ORDER BY scheduled_for ASC LIMIT 25 FOR UPDATE SKIP LOCKED")
	assert.Equal(t, []any{entity.StatusPending, now, now}, args)
}

func TestRetryableQuery(t *testing.T) {
	r := newTestRepo()
	now := time.Now().UTC()

	sql, args, err := r.retryableQuery(now, time.Minute, 10).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "status = $1 AND retry_count < max_retries")
	assert.Contains(t, sql, "make_interval(secs => $2 * power(2, GREATEST(retry_count - 1, 0))) <= $3")
	assert.Equal(t, []any{entity.StatusFailed, 60.0, now}, args)
}

func TestInsertQuery(t *testing.T) {
	r := newTestRepo()
	n := entity.Notification{ID: uuid.New(), UserID: uuid.New(), Data: map[string]any{"k": "v"}}

	sql, args, err := r.insertQuery(n)
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO notifications (id,user_id,channel,category,title,message,data,")
	require.Len(t, args, len(notificationColumns))
	assert.Equal(t, []byte(`{"k":"v"}`), args[6])
	assert.Nil(t, args[14])
}

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(f.values[i]))
	}
	return nil
}

func TestScanNotification(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	row := fakeRow{values: []any{
		id, owner, entity.ChannelEmail, entity.CategoryAnalysisFailed, "Analysis Failed", "msg",
		[]byte(`{"error":"gpu oom"}`), entity.StatusRead, entity.PriorityHigh, now,
		pgtype.Timestamptz{}, pgtype.Timestamptz{Time: now, Valid: true},
		0, 3, pgtype.Text{String: "x", Valid: true}, now, now,
		pgtype.Timestamptz{Time: now, Valid: true},
	}}

	n, err := scanNotification(row)
	require.NoError(t, err)

	assert.Equal(t, id, n.ID)
	assert.Equal(t, "gpu oom", n.Data["error"])
	assert.Nil(t, n.SentAt)
	require.NotNil(t, n.ReadAt)
	assert.Equal(t, now, *n.ReadAt)
	assert.Equal(t, "x", n.ErrorMessage)
	require.NotNil(t, n.LeaseUntil)
	assert.Equal(t, now, *n.LeaseUntil)
}

func TestScanNotification_EmptyData(t *testing.T) {
	now := time.Now().UTC()
	row := fakeRow{values: []any{
		uuid.New(), uuid.New(), entity.ChannelInApp, entity.CategoryWelcome, "t", "m",
		[]byte(nil), entity.StatusPending, entity.PriorityNormal, now,
		pgtype.Timestamptz{}, pgtype.Timestamptz{}, 0, 3, pgtype.Text{}, now, now,
		pgtype.Timestamptz{},
	}}

	n, err := scanNotification(row)
	require.NoError(t, err)
	assert.NotNil(t, n.Data)
	assert.Empty(t, n.ErrorMessage)
	assert.Nil(t, n.LeaseUntil)
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError("op", pgx.ErrNoRows), entity.ErrNotFound)
	assert.ErrorIs(t, mapError("op", &pgconn.PgError{Code: "23505"}), entity.ErrConflictingData)
	assert.ErrorIs(t, mapError("op", &pgconn.PgError{Code: "08006"}), entity.ErrStoreUnavailable)
	assert.ErrorIs(t, mapError("op", context.DeadlineExceeded), entity.ErrStoreUnavailable)

	plain := errors.New("syntax")
	err := mapError("op", plain)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, entity.ErrStoreUnavailable)
}
