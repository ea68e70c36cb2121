package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPending() Notification {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return Notification{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Channel:      ChannelInApp,
		Category:     CategoryWelcome,
		Title:        "t",
		Message:      "m",
		Status:       StatusPending,
		Priority:     PriorityNormal,
		MaxRetries:   DefaultMaxRetries,
		ScheduledFor: created,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestMarkSent(t *testing.T) {
	now := time.Now().UTC()

	n, changed, err := MarkSent(newPending(), now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusSent, n.Status)
	require.NotNil(t, n.SentAt)
	assert.Equal(t, now, *n.SentAt)

	again, changed, err := MarkSent(n, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, *again.SentAt)

	read, _, _ := MarkRead(n, now)
	_, changed, err = MarkSent(read, now)
	require.NoError(t, err)
	assert.False(t, changed)

	failed, _, _ := MarkFailed(newPending(), "boom", now)
	_, _, err = MarkSent(failed, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkRead_Idempotent(t *testing.T) {
	first := time.Now().UTC()

	n, changed, err := MarkRead(newPending(), first)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusRead, n.Status)
	require.NotNil(t, n.ReadAt)

	n2, changed, err := MarkRead(n, first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, StatusRead, n2.Status)
	assert.Equal(t, first, *n2.ReadAt)
}

func TestMarkRead_FromEveryState(t *testing.T) {
	now := time.Now().UTC()
	sent, _, _ := MarkSent(newPending(), now)
	failed, _, _ := MarkFailed(newPending(), "x", now)

	for _, n := range []Notification{newPending(), sent, failed} {
		got, changed, err := MarkRead(n, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusRead, got.Status)
		assert.NotNil(t, got.ReadAt)
	}
}

func TestMarkFailed_CapsRetryCount(t *testing.T) {
	now := time.Now().UTC()
	n := newPending()

	for i := 1; i <= n.MaxRetries; i++ {
		var changed bool
		var err error
		n, changed, err = MarkFailed(n, "smtp timeout", now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, i, n.RetryCount)
		assert.Equal(t, StatusFailed, n.Status)
	}

	n4, changed, err := MarkFailed(n, "again", now)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 3, n4.RetryCount)
	assert.Equal(t, StatusFailed, n4.Status)
	assert.Equal(t, "smtp timeout", n4.ErrorMessage)
	assert.False(t, n4.IsRetryable())
}

func TestMarkFailed_ZeroBudget(t *testing.T) {
	n := newPending()
	n.MaxRetries = 0

	got, changed, err := MarkFailed(n, "x", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, 0, got.RetryCount)
}

func TestMarkFailed_RejectsDeliveredRecords(t *testing.T) {
	now := time.Now().UTC()
	sent, _, _ := MarkSent(newPending(), now)
	read, _, _ := MarkRead(newPending(), now)

	_, _, err := MarkFailed(sent, "x", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = MarkFailed(read, "x", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRequeue(t *testing.T) {
	now := time.Now().UTC()

	failed, _, _ := MarkFailed(newPending(), "x", now)
	n, changed, err := Requeue(failed, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusPending, n.Status)
	assert.Equal(t, 1, n.RetryCount)

	_, changed, err = Requeue(n, now)
	require.NoError(t, err)
	assert.False(t, changed)

	exhausted := failed
	exhausted.RetryCount = exhausted.MaxRetries
	_, _, err = Requeue(exhausted, now)
	assert.ErrorIs(t, err, ErrRetryExhausted)

	sent, _, _ := MarkSent(newPending(), now)
	_, _, err = Requeue(sent, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestHandOff(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	until := now.Add(2 * time.Minute)

	n, changed, err := HandOff(newPending(), until, now)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, n.LeaseUntil)
	assert.Equal(t, until, *n.LeaseUntil)
	assert.True(t, n.HandedOff(now.Add(time.Minute)))
	assert.False(t, n.LeaseExpired(now.Add(time.Minute)))
	assert.True(t, n.LeaseExpired(until))

	_, changed, err = HandOff(n, until.Add(time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)

	sent, _, _ := MarkSent(newPending(), now)
	_, _, err = HandOff(sent, until, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionsEndHandOff(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	handed, _, err := HandOff(newPending(), now.Add(time.Minute), now)
	require.NoError(t, err)

	sent, _, _ := MarkSent(handed, now)
	assert.Nil(t, sent.LeaseUntil)

	read, _, _ := MarkRead(handed, now)
	assert.Nil(t, read.LeaseUntil)

	failed, changed, err := MarkFailed(handed, "delivery report timed out", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, failed.LeaseUntil)
	assert.Equal(t, 1, failed.RetryCount)

	requeued, _, err := Requeue(failed, now)
	require.NoError(t, err)
	assert.Nil(t, requeued.LeaseUntil)
}

func TestNotification_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Notification)
		ok     bool
	}{
		{"valid", func(*Notification) {}, true},
		{"missing user", func(n *Notification) { n.UserID = uuid.Nil }, false},
		{"bad channel", func(n *Notification) { n.Channel = "fax" }, false},
		{"bad category", func(n *Notification) { n.Category = "promo" }, false},
		{"empty title", func(n *Notification) { n.Title = "" }, false},
		{"empty message", func(n *Notification) { n.Message = "" }, false},
		{"bad priority", func(n *Notification) { n.Priority = "meh" }, false},
		{"negative retries", func(n *Notification) { n.MaxRetries = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newPending()
			tt.mutate(&n)
			err := n.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}
