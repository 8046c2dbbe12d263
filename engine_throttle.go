package frontdoor

import (
	"context"
	"errors"

	"github.com/arkadianet/frontdoor/internal/rate"
)

// ThrottleCheck describes the throttlecheck operation and its observable behavior.
//
// ThrottleCheck may return an error when input validation, dependency calls, or security checks fail.
// ThrottleCheck does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ThrottleCheck(ctx context.Context, identifier string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.limiter == nil {
		return nil
	}

	err := e.limiter.Check(ctx, identifier, clientIPFromContext(ctx))
	return e.mapThrottleErr(ctx, identifier, err)
}

// ThrottleHit describes the throttlehit operation and its observable behavior.
//
// ThrottleHit may return an error when input validation, dependency calls, or security checks fail.
// ThrottleHit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ThrottleHit(ctx context.Context, identifier string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.limiter == nil {
		return nil
	}

	err := e.limiter.Hit(ctx, identifier, clientIPFromContext(ctx))
	return e.mapThrottleErr(ctx, identifier, err)
}

// ThrottleReset describes the throttlereset operation and its observable behavior.
//
// ThrottleReset may return an error when input validation, dependency calls, or security checks fail.
// ThrottleReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ThrottleReset(ctx context.Context, identifier string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.limiter == nil {
		return nil
	}

	if err := e.limiter.Reset(ctx, identifier, clientIPFromContext(ctx)); err != nil {
		return ErrThrottleUnavailable
	}
	return nil
}

// ThrottleAttempts describes the throttleattempts operation and its observable behavior.
//
// ThrottleAttempts may return an error when input validation, dependency calls, or security checks fail.
// ThrottleAttempts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ThrottleAttempts(ctx context.Context, identifier string) (int64, error) {
	if e == nil {
		return 0, ErrEngineNotReady
	}
	if e.limiter == nil {
		return 0, ErrThrottleDisabled
	}

	count, err := e.limiter.Attempts(ctx, identifier)
	if err != nil {
		return 0, ErrThrottleUnavailable
	}
	return count, nil
}

func (e *Engine) mapThrottleErr(ctx context.Context, identifier string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rate.ErrRateLimited):
		e.metricInc(MetricThrottleHit)
		e.auditEmit(ctx, auditEventThrottleHit, "", false, identifier)
		return ErrThrottled
	default:
		return ErrThrottleUnavailable
	}
}
