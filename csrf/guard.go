package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/arkadianet/frontdoor/session"
)

const (
	nonceSize = 16
	macSize   = sha256.Size
	tokenSize = nonceSize + macSize
)

// Guard derives and verifies per-session CSRF tokens. Tokens are bound
// to the session's CSRF secret: a token minted for one session can
// never verify against another, even when the two sessions carry
// identical handler-visible contents.
type Guard struct{}

// NewGuard creates a stateless [Guard]. It is safe for concurrent use.
func NewGuard() *Guard {
	return &Guard{}
}

// Issue mints a token for the session:
//
//	nonce(16) ‖ HMAC-SHA256(secret, nonce)
//
// base64url-encoded. Each call embeds a fresh nonce, but every token
// issued for the same session verifies against the same secret, so
// handlers may call Issue any number of times within one session.
func (g *Guard) Issue(sess *session.Session) (string, error) {
	if sess == nil || len(sess.CSRFSecret) == 0 {
		return "", errors.New("session has no CSRF secret")
	}

	token := make([]byte, nonceSize, tokenSize)
	if _, err := io.ReadFull(rand.Reader, token); err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, sess.CSRFSecret)
	mac.Write(token[:nonceSize])
	token = mac.Sum(token)

	return base64.RawURLEncoding.EncodeToString(token), nil
}

// Verify reports whether the supplied token was minted from the
// session's secret. The comparison is constant-time; structural
// malformation and MAC mismatch are indistinguishable to the caller.
func (g *Guard) Verify(sess *session.Session, supplied string) bool {
	if sess == nil || len(sess.CSRFSecret) == 0 || supplied == "" {
		return false
	}

	raw, err := base64.RawURLEncoding.Strict().DecodeString(supplied)
	if err != nil || len(raw) != tokenSize {
		return false
	}

	mac := hmac.New(sha256.New, sess.CSRFSecret)
	mac.Write(raw[:nonceSize])
	return hmac.Equal(raw[nonceSize:], mac.Sum(nil))
}

// StateChanging reports whether an HTTP method requires CSRF
// verification before the route handler runs.
func StateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
