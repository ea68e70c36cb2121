package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TxFunc func(tx QueryExecuter) error

// Manager runs a function inside a single pgx transaction.
type Manager interface {
	ExecuteInTransaction(ctx context.Context, name string, fn TxFunc) error
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type TxManager struct {
	db  txBeginner
	log *zap.Logger
}

func NewManager(db *Postgres, log *zap.Logger) (*TxManager, error) {
	if db == nil || db.Pool == nil {
		return nil, errors.New("postgres.NewManager: nil pool")
	}
	return &TxManager{db: db.Pool, log: log}, nil
}

func (m *TxManager) ExecuteInTransaction(ctx context.Context, name string, fn TxFunc) (err error) {
	const op = "postgres.TxManager.ExecuteInTransaction"

	start := time.Now()
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%s: %s: begin: %w", op, name, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				m.log.Error("transaction rollback failed",
					zap.String("tx", name),
					zap.Error(rbErr),
				)
			}
			return
		}
		if cmErr := tx.Commit(ctx); cmErr != nil {
			err = fmt.Errorf("%s: %s: commit: %w", op, name, cmErr)
			return
		}
		m.log.Debug("transaction committed",
			zap.String("tx", name),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	return fn(tx)
}
