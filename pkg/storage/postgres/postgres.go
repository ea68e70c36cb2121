package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wb-go/wbf/retry"
	"go.uber.org/zap"
)

const (
	_defaultMaxPoolSize     = 10
	_defaultConnAttempts    = 5
	_defaultBaseRetryDelay  = 500 * time.Millisecond
	_defaultConnectDeadline = 5 * time.Second

	_retryBackoff = 2
)

// QueryExecuter is satisfied by both the pool and a transaction, so
// repositories can run the same statement inside or outside a tx.
type QueryExecuter interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Postgres struct {
	squirrel.StatementBuilderType

	Pool *pgxpool.Pool
	log  *zap.Logger

	maxPoolSize    int32
	connAttempts   int
	baseRetryDelay time.Duration
}

func New(ctx context.Context, dsn string, log *zap.Logger, opts ...Option) (*Postgres, error) {
	const op = "postgres.New"

	pg := &Postgres{
		StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log:                  log,
		maxPoolSize:          _defaultMaxPoolSize,
		connAttempts:         _defaultConnAttempts,
		baseRetryDelay:       _defaultBaseRetryDelay,
	}
	for _, opt := range opts {
		opt(pg)
	}
	if err := pg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: parse dsn: %w", op, err)
	}
	poolCfg.MaxConns = pg.maxPoolSize
	poolCfg.MaxConnIdleTime = time.Minute

	attempt := 0
	err = retry.Do(func() error {
		attempt++
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		pool, connErr := pg.connect(ctx, poolCfg)
		if connErr != nil {
			log.Warn("postgres connect failed", zap.Int("attempt", attempt), zap.Error(connErr))
			return connErr
		}
		pg.Pool = pool
		return nil
	}, retry.Strategy{
		Attempts: pg.connAttempts,
		Delay:    pg.baseRetryDelay,
		Backoff:  _retryBackoff,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		return nil, fmt.Errorf("%s: gave up after %d attempts: %w", op, attempt, err)
	}

	log.Info("postgres connected",
		zap.Int("attempt", attempt),
		zap.Int32("max_pool_size", pg.maxPoolSize),
	)
	return pg, nil
}

func (p *Postgres) connect(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, _defaultConnectDeadline)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.Pool.Exec(ctx, sql, args...)
}

func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.Pool.Query(ctx, sql, args...)
}

func (p *Postgres) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.Pool.QueryRow(ctx, sql, args...)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// IsUnavailable reports whether err came from the connection rather than
// from the statement itself.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception, 57P: operator intervention
		return len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code == "57P01" || pgErr.Code == "57P03")
	}
	return false
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
