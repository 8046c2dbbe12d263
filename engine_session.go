package frontdoor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arkadianet/frontdoor/cookie"
)

// LoadSession describes the loadsession operation and its observable behavior.
//
// LoadSession may return an error when input validation, dependency calls, or security checks fail.
// LoadSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LoadSession(ctx context.Context, r *http.Request, now time.Time) (*Session, error) {
	if e == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	raw := ""
	if c, err := r.Cookie(e.sessions.CookieName()); err == nil {
		raw = c.Value
	}

	sess, restored, err := e.sessions.Load(raw, now)
	if err != nil {
		return nil, err
	}

	switch {
	case restored:
		e.metricInc(MetricSessionRestored)
	case raw != "":
		// A cookie was presented but produced a fresh session. The client
		// only ever sees "not logged in"; the reason stays internal.
		e.metricInc(MetricSessionDecodeFailure)
		e.metricInc(MetricSessionIssued)
		e.auditEmit(ctx, auditEventSessionDecodeFailure, sess.ID, false, "cookie rejected")
	default:
		e.metricInc(MetricSessionIssued)
	}

	return sess, nil
}

// SaveSession describes the savesession operation and its observable behavior.
//
// SaveSession may return an error when input validation, dependency calls, or security checks fail.
// SaveSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SaveSession(sess *Session, now time.Time) (*http.Cookie, error) {
	if e == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	c, err := e.sessions.Save(sess, now)
	if err != nil {
		if errors.Is(err, cookie.ErrTooLarge) {
			return nil, ErrSessionTooLarge
		}
		return nil, err
	}
	return c, nil
}

// EmitSession describes the emitsession operation and its observable behavior.
//
// EmitSession may return an error when input validation, dependency calls, or security checks fail.
// EmitSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EmitSession(w http.ResponseWriter, sess *Session, now time.Time) error {
	c, err := e.SaveSession(sess, now)
	if err != nil {
		return err
	}
	http.SetCookie(w, c)
	return nil
}
