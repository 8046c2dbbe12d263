// Package session provides the stateless session abstraction: a
// mutable per-request key/value map that round-trips through an
// encrypted, authenticated cookie instead of server-side storage.
//
// The [Store] applies a rolling expiry: each successful load re-issues
// the cookie with a full window from "now", so active users stay signed
// in while idle sessions age out. Load never fails — a cookie that is
// missing, expired, or fails verification simply yields a fresh empty
// session, with no externally visible distinction between the cases.
package session
