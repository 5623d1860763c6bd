package client

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ncobase/pagewalk/paging"
)

// RetryConfig defines configuration for retries
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxElapsedTime  time.Duration
	RetryIfFn       func(error) bool
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
		MaxElapsedTime:  30 * time.Second,
		RetryIfFn:       Retryable,
	}
}

func (cfg RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	if cfg.Multiplier > 0 {
		b.Multiplier = cfg.Multiplier
	}
	if cfg.MaxElapsedTime > 0 {
		b.MaxElapsedTime = cfg.MaxElapsedTime
	}

	var bo backoff.BackOff = b
	if cfg.MaxRetries > 0 {
		bo = backoff.WithMaxRetries(b, uint64(cfg.MaxRetries))
	}
	return backoff.WithContext(bo, ctx)
}

// WithRetry wraps f so that each page request is retried with exponential
// backoff. The paginator itself never retries; a page that still fails after
// the last attempt aborts the traversal as usual.
func WithRetry[T any](f paging.Fetcher[T], cfg RetryConfig) paging.Fetcher[T] {
	retryIf := cfg.RetryIfFn
	if retryIf == nil {
		retryIf = Retryable
	}
	return paging.FetchFunc[T](func(ctx context.Context, opts paging.CursorOptions) (*paging.Page[T], error) {
		var page *paging.Page[T]
		err := backoff.Retry(func() error {
			p, err := f.Fetch(ctx, opts)
			if err != nil {
				if !retryIf(err) {
					return backoff.Permanent(err)
				}
				return err
			}
			page = p
			return nil
		}, cfg.backOff(ctx))
		if err != nil {
			return nil, err
		}
		return page, nil
	})
}
