package provider

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Policy controls how Call runs a provider operation.
type Policy struct {
	Timeout  time.Duration // per attempt; zero means no timeout
	Retries  uint          // extra attempts for retryable errors
	Interval time.Duration // first backoff interval
	Logger   *zap.Logger
}

// DefaultPolicy is used when the configuration does not override it.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:  10 * time.Second,
		Retries:  2,
		Interval: 500 * time.Millisecond,
		Logger:   zap.NewNop(),
	}
}

// Call runs fn with a per-attempt timeout and retries ErrUnavailable and
// ErrRateLimited with exponential backoff. ErrInvalidInput and ErrTimeout are
// returned immediately. Cancelling ctx stops any further attempt.
func Call[T any](ctx context.Context, p Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	attempt := 0
	operation := func() (T, error) {
		attempt++
		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		defer cancel()

		res, err := fn(attemptCtx)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			// The caller gave up; do not retry and do not reclassify.
			return res, backoff.Permanent(ctx.Err())
		}
		err = Classify(op, err)
		if !Retryable(err) {
			return res, backoff.Permanent(err)
		}
		log.Warn("provider call failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return res, err
	}

	eb := backoff.NewExponentialBackOff()
	if p.Interval > 0 {
		eb.InitialInterval = p.Interval
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(p.Retries+1),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Unwrap()
		}
		if errors.Is(err, context.Canceled) {
			return res, err
		}
		err = Classify(op, err)
		log.Error("provider call failed",
			zap.String("op", op),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return res, err
	}
	log.Debug("provider call succeeded", zap.String("op", op), zap.Int("attempts", attempt))
	return res, nil
}
