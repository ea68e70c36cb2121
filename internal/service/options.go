package service

import (
	"errors"
	"time"
)

type Option func(*NotifyService)

func WithMaxRetries(retries int) Option {
	return func(s *NotifyService) {
		if retries >= 0 {
			s.maxRetries = retries
		}
	}
}

func WithPageLimits(defaultLimit, maxLimit int) Option {
	return func(s *NotifyService) {
		if defaultLimit > 0 {
			s.defaultPageLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxPageLimit = maxLimit
		}
	}
}

func WithDispatchTimeout(timeout time.Duration) Option {
	return func(s *NotifyService) {
		if timeout > 0 {
			s.dispatchTimeout = timeout
		}
	}
}

func WithCASAttempts(attempts int) Option {
	return func(s *NotifyService) {
		if attempts > 0 {
			s.casAttempts = attempts
		}
	}
}

// WithClock overrides the time source; tests use it to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *NotifyService) {
		if now != nil {
			s.now = now
		}
	}
}

func (s *NotifyService) validate() error {
	if s.repo == nil {
		return errors.New("invalid notify repository: must be non-nil")
	}
	if s.prefs == nil {
		return errors.New("invalid preference repository: must be non-nil")
	}
	if s.log == nil {
		return errors.New("invalid logger: must be non-nil")
	}
	if s.defaultPageLimit > s.maxPageLimit {
		return errors.New("invalid page limits: default must be <= max")
	}
	return nil
}
