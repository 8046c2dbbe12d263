// Package frontdoor is the security layer in front of an identity-bridge
// web service: stateless encrypted session cookies, CSRF protection for
// state-changing requests, transport-security headers, and declarative
// field validation for credential-bearing payloads.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// frontdoor is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (MetricsSnapshot, SecurityReport, etc.). Throttle counters live under internal/ and are
// never exported; audit dispatch runs on an unexported dispatcher behind [AuditSink]. The
// cookie, session, csrf, headers, validate, and certify subpackages are usable standalone.
//
// # What this package must NOT do
//
//   - Persist session state server-side. The encrypted cookie is the only store.
//   - Reveal to a client why a cookie was rejected. Tampered, expired, and absent
//     cookies all present as "not logged in".
//   - Expose Redis clients or key material in its public API.
//
// # Performance contract
//
// LoadSession and VerifyCSRF are the hot path. They perform no I/O beyond the
// cryptographic work itself; only the optional credential-route throttle touches Redis.
package frontdoor
