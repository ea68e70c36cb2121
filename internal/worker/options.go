package worker

import (
	"errors"
	"time"
)

type Option func(*Worker)

func Interval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func BatchSize(n uint64) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func LeaseTTL(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.leaseTTL = d
		}
	}
}

func BaseRetryDelay(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.baseRetryDelay = d
		}
	}
}

func Clock(now func() time.Time) Option {
	return func(w *Worker) {
		if now != nil {
			w.now = now
		}
	}
}

func (w *Worker) validate() error {
	switch {
	case w.tm == nil:
		return errors.New("invalid transaction manager: must be non-nil")
	case w.store == nil:
		return errors.New("invalid store: must be non-nil")
	case w.leases == nil:
		return errors.New("invalid leaser: must be non-nil")
	case w.publisher == nil:
		return errors.New("invalid publisher: must be non-nil")
	case w.log == nil:
		return errors.New("invalid logger: must be non-nil")
	}
	return nil
}
