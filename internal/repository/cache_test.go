package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedis struct {
	keys map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis { return &fakeRedis{keys: map[string]time.Duration{}} }

func (f *fakeRedis) SetNX(_ context.Context, key string, _ any, ttl time.Duration) *goredis.BoolCmd {
	if f.err != nil {
		return goredis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return goredis.NewBoolResult(false, nil)
	}
	f.keys[key] = ttl
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			delete(f.keys, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func TestCacheRepository_AcquireOnce(t *testing.T) {
	rdb := newFakeRedis()
	repo := NewCacheRepository(rdb, time.Hour, zap.NewNop())
	ctx := context.Background()

	assert.True(t, repo.AcquireOnce(ctx, "events", "evt-1"))
	assert.False(t, repo.AcquireOnce(ctx, "events", "evt-1"))
	assert.True(t, repo.AcquireOnce(ctx, "reports", "evt-1"))
	assert.Equal(t, time.Hour, rdb.keys["dedup:events:evt-1"])

	require.NoError(t, repo.ForgetEvent(ctx, "events", "evt-1"))
	assert.True(t, repo.AcquireOnce(ctx, "events", "evt-1"))
}

func TestCacheRepository_AcquireOnce_FailsOpen(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	repo := NewCacheRepository(rdb, time.Hour, zap.NewNop())

	assert.True(t, repo.AcquireOnce(context.Background(), "events", "evt-1"))
	assert.True(t, repo.AcquireOnce(context.Background(), "events", "evt-1"))
}

func TestCacheRepository_Lease(t *testing.T) {
	rdb := newFakeRedis()
	repo := NewCacheRepository(rdb, time.Hour, zap.NewNop())
	ctx := context.Background()
	id := uuid.New()

	ok, err := repo.AcquireLease(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, rdb.keys["lease:deliver:"+id.String()])

	ok, err = repo.AcquireLease(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.ReleaseLease(ctx, id))
	ok, err = repo.AcquireLease(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	rdb.err = errors.New("down")
	_, err = repo.AcquireLease(ctx, uuid.New(), time.Minute)
	assert.Error(t, err)
}
