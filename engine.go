package frontdoor

import (
	"context"
	"net/http"
	"time"

	"github.com/arkadianet/frontdoor/certify"
	"github.com/arkadianet/frontdoor/cookie"
	"github.com/arkadianet/frontdoor/csrf"
	"github.com/arkadianet/frontdoor/headers"
	"github.com/arkadianet/frontdoor/internal/rate"
	"github.com/arkadianet/frontdoor/session"
)

// Engine defines a public type used by frontdoor APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	codec     *cookie.Codec
	sessions  *session.Store
	guard     *csrf.Guard
	headers   *headers.Policy
	limiter   *rate.Limiter
	certifier *certify.Manager
	audit     *auditDispatcher
	metrics   *Metrics
	ruleSets  map[string]RuleSet
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// ObservePipelineLatency describes the observepipelinelatency operation and its observable behavior.
//
// ObservePipelineLatency may return an error when input validation, dependency calls, or security checks fail.
// ObservePipelineLatency does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ObservePipelineLatency(d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(MetricPipelineLatency, d)
}

// ApplyHeaders describes the applyheaders operation and its observable behavior.
//
// ApplyHeaders may return an error when input validation, dependency calls, or security checks fail.
// ApplyHeaders does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ApplyHeaders(w http.ResponseWriter, r *http.Request) {
	if e == nil || e.headers == nil {
		return
	}
	e.headers.Apply(w, r)
}

// Mode describes the mode operation and its observable behavior.
//
// Mode may return an error when input validation, dependency calls, or security checks fail.
// Mode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Mode() Mode {
	if e == nil || e.headers == nil {
		return ModeDevelopment
	}
	return e.headers.Mode()
}

// CookieName describes the cookiename operation and its observable behavior.
//
// CookieName may return an error when input validation, dependency calls, or security checks fail.
// CookieName does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CookieName() string {
	if e == nil || e.sessions == nil {
		return ""
	}
	return e.sessions.CookieName()
}

// CSRFFormField describes the csrfformfield operation and its observable behavior.
//
// CSRFFormField may return an error when input validation, dependency calls, or security checks fail.
// CSRFFormField does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CSRFFormField() string {
	if e == nil {
		return ""
	}
	return e.config.CSRF.FormField
}

// CSRFHeaderName describes the csrfheadername operation and its observable behavior.
//
// CSRFHeaderName may return an error when input validation, dependency calls, or security checks fail.
// CSRFHeaderName does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CSRFHeaderName() string {
	if e == nil {
		return ""
	}
	return e.config.CSRF.HeaderName
}

// RecordPanic describes the recordpanic operation and its observable behavior.
//
// RecordPanic may return an error when input validation, dependency calls, or security checks fail.
// RecordPanic does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RecordPanic(ctx context.Context, detail string) {
	if e == nil {
		return
	}
	e.metricInc(MetricPanicRecovered)
	e.auditEmit(ctx, auditEventPanicRecovered, "", false, detail)
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) auditEmit(ctx context.Context, eventType, sessionID string, success bool, errMsg string) {
	if e == nil || e.audit == nil {
		return
	}
	e.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		SessionID: sessionID,
		Path:      requestPathFromContext(ctx),
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Error:     errMsg,
	})
}
