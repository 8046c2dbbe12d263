// Package csrf implements session-bound cross-site request forgery
// tokens.
//
// A token is a fresh nonce plus a keyed hash of that nonce under the
// session's CSRF secret. Because the secret never leaves the encrypted
// session cookie, only a page that legitimately holds the session can
// obtain a token that verifies, and no token survives the session that
// minted it.
package csrf
