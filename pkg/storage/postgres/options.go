package postgres

import (
	"errors"
	"time"
)

type Option func(*Postgres)

func MaxPoolSize(size int) Option {
	return func(p *Postgres) {
		if size > 0 {
			p.maxPoolSize = int32(size)
		}
	}
}

func MaxConnAttempts(attempts int) Option {
	return func(p *Postgres) {
		if attempts > 0 {
			p.connAttempts = attempts
		}
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(p *Postgres) {
		if delay > 0 {
			p.baseRetryDelay = delay
		}
	}
}

func (p *Postgres) validate() error {
	if p.maxPoolSize <= 0 {
		return errors.New("invalid max pool size: must be > 0")
	}
	if p.connAttempts <= 0 {
		return errors.New("invalid conn attempts: must be > 0")
	}
	if p.baseRetryDelay <= 0 {
		return errors.New("invalid base retry delay: must be > 0")
	}
	return nil
}
