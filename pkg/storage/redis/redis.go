package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	_defaultPoolSize    = 20
	_defaultMinIdleCons = 5
	_defaultPoolTimeout = 100 * time.Millisecond
	_pingTimeout        = 2 * time.Second
)

type Redis struct {
	*goredis.Client

	poolSize    int
	minIdleCons int
	poolTimeout time.Duration
}

func New(ctx context.Context, addr, password string, db int, opts ...Option) (*Redis, error) {
	const op = "redis.New"

	r := &Redis{
		poolSize:    _defaultPoolSize,
		minIdleCons: _defaultMinIdleCons,
		poolTimeout: _defaultPoolTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.Client = goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     r.poolSize,
		MinIdleConns: r.minIdleCons,
		PoolTimeout:  r.poolTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, _pingTimeout)
	defer cancel()
	if err := r.Ping(pingCtx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return r, nil
}
