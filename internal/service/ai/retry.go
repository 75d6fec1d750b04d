package ai

import (
	"context"
	"log/slog"
	"time"
)

// Policy bounds retries of a single upstream operation. The wait before
// attempt n+1 is BaseDelay×n — linear, not exponential.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy mirrors the gateway defaults: three attempts, one
// second base delay.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Executor retries transient upstream failures with linear backoff.
// Non-transient failures and final-attempt failures propagate
// immediately without waiting.
type Executor struct {
	policy Policy
	logger *slog.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewExecutor builds an Executor, normalizing a non-positive attempt
// budget to a single attempt.
func NewExecutor(policy Policy, logger *slog.Logger) *Executor {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Executor{
		policy: policy,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Do invokes op until it succeeds, a non-transient error occurs, or the
// attempt budget is spent. Each failed attempt is logged with its
// attempt number.
func (e *Executor) Do(ctx context.Context, label string, op func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		e.logger.Warn("upstream attempt failed",
			"op", label,
			"attempt", attempt,
			"error", err,
		)

		if attempt == e.policy.MaxAttempts || !IsTransient(err) {
			break
		}

		if err := e.sleep(ctx, e.policy.BaseDelay*time.Duration(attempt)); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

// sleepContext waits for d unless the context is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
