package middleware

import (
	"context"

	frontdoor "github.com/arkadianet/frontdoor"
)

type sessionContextKey struct{}
type csrfVerifiedContextKey struct{}
type fieldsContextKey struct{}

// SessionFromContext returns the live session attached by [Secure].
func SessionFromContext(ctx context.Context) (*frontdoor.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*frontdoor.Session)
	return sess, ok
}

// CSRFVerified reports whether the current request carried a token that
// verified against the session's secret. It is always false for
// requests that did not require verification.
func CSRFVerified(ctx context.Context) bool {
	verified, _ := ctx.Value(csrfVerifiedContextKey{}).(bool)
	return verified
}

// FieldsFromContext returns the parsed request fields, with the CSRF
// token already stripped. Handlers behind [Secure] read their input
// here rather than re-parsing the body.
func FieldsFromContext(ctx context.Context) (map[string]string, bool) {
	fields, ok := ctx.Value(fieldsContextKey{}).(map[string]string)
	return fields, ok
}
