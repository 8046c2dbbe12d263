package frontdoor

import (
	"context"

	"github.com/arkadianet/frontdoor/csrf"
)

// CSRFProtectionEnabled describes the csrfprotectionenabled operation and its observable behavior.
//
// CSRFProtectionEnabled may return an error when input validation, dependency calls, or security checks fail.
// CSRFProtectionEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CSRFProtectionEnabled() bool {
	return e != nil && e.config.CSRF.Protection
}

// IssueCSRF describes the issuecsrf operation and its observable behavior.
//
// IssueCSRF may return an error when input validation, dependency calls, or security checks fail.
// IssueCSRF does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) IssueCSRF(sess *Session) (string, error) {
	if e == nil || e.guard == nil {
		return "", ErrEngineNotReady
	}

	token, err := e.guard.Issue(sess)
	if err != nil {
		return "", err
	}
	e.metricInc(MetricCSRFIssued)
	return token, nil
}

// VerifyCSRF describes the verifycsrf operation and its observable behavior.
//
// VerifyCSRF may return an error when input validation, dependency calls, or security checks fail.
// VerifyCSRF does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) VerifyCSRF(ctx context.Context, sess *Session, supplied string) error {
	if e == nil || e.guard == nil {
		return ErrEngineNotReady
	}

	if !e.guard.Verify(sess, supplied) {
		e.metricInc(MetricCSRFMismatch)
		sessionID := ""
		if sess != nil {
			sessionID = sess.ID
		}
		e.auditEmit(ctx, auditEventCSRFMismatch, sessionID, false, ErrCSRFMismatch.Error())
		return ErrCSRFMismatch
	}

	e.metricInc(MetricCSRFVerified)
	return nil
}

// StateChanging describes the statechanging operation and its observable behavior.
//
// StateChanging may return an error when input validation, dependency calls, or security checks fail.
// StateChanging does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func StateChanging(method string) bool {
	return csrf.StateChanging(method)
}
