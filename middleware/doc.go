// Package middleware exposes the HTTP adapter for the frontdoor security
// pipeline: security headers, session decode/re-issue, CSRF enforcement,
// optional credential-route throttling, and declarative field validation,
// all applied in a fixed order before the wrapped handler runs.
//
// # Pipeline
//
// [Secure] composes the stages as an explicit ordered list:
//
//	recovery → headers → session → CSRF → throttle → validation → handler
//
// No stage may be skipped or reordered; each depends on the previous
// stage's outcome. A stage that rejects short-circuits with a client
// error and the handler is never invoked. The session cookie is emitted
// lazily on the first response write, so short-circuit responses carry
// it too.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement security logic itself — all decisions are delegated to the
// Engine and its subpackages.
//
// # What this package must NOT do
//
//   - Touch key material or encode cookies directly (delegates to Engine).
//   - Tell a client why its cookie was rejected.
//   - Forward the CSRF form field to the handler's field map.
package middleware
