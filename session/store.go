package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/arkadianet/frontdoor/cookie"
)

// Config holds the store's cookie emission policy.
type Config struct {
	// TTL is the rolling expiry window. Every save re-issues the cookie
	// with expiry TTL from "now", so an active session slides forward
	// without any server-side last-access state.
	TTL time.Duration

	// CookieName is the session cookie's name.
	CookieName string

	// Secure marks the cookie for encrypted transport only. It is the
	// header policy's verdict: true behind an SSL terminator, false in
	// local development.
	Secure bool

	// SameSite scoping for the login flow. Defaults to strict.
	SameSite http.SameSite
}

// Store wraps the cookie codec with expiry and renewal policy and
// produces the per-request session object. It holds no per-request
// state and is safe for concurrent use.
type Store struct {
	codec *cookie.Codec
	cfg   Config
}

// NewStore creates a [Store] over the given codec.
func NewStore(codec *cookie.Codec, cfg Config) (*Store, error) {
	if codec == nil {
		return nil, errors.New("nil codec")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session TTL must be > 0")
	}
	if cfg.CookieName == "" {
		return nil, errors.New("session cookie name required")
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteStrictMode
	}

	return &Store{codec: codec, cfg: cfg}, nil
}

// CookieName returns the configured session cookie name.
func (s *Store) CookieName() string {
	return s.cfg.CookieName
}

// TTL returns the rolling expiry window.
func (s *Store) TTL() time.Duration {
	return s.cfg.TTL
}

// Load turns an inbound cookie value into a live session. It never
// fails: an absent, expired, or tampered cookie produces a fresh empty
// session with a new CSRF secret. restored reports whether the session
// came from a verified cookie; callers must not surface the difference
// between "absent" and "rejected" to the client.
//
// The returned session is nil only when the process cannot read random
// bytes, which is not a recoverable condition.
func (s *Store) Load(raw string, now time.Time) (sess *Session, restored bool, err error) {
	if raw != "" {
		payload, decErr := s.codec.Decode(raw, now)
		if decErr == nil {
			if decoded, wireErr := decode(payload); wireErr == nil {
				return decoded, true, nil
			}
		}
		// Fall through: any failure becomes a fresh session.
	}

	fresh, err := New(now)
	if err != nil {
		return nil, false, err
	}
	return fresh, false, nil
}

// LoadRequest is [Store.Load] keyed off the request's cookie header.
func (s *Store) LoadRequest(r *http.Request, now time.Time) (*Session, bool, error) {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil || c == nil {
		return s.Load("", now)
	}
	return s.Load(c.Value, now)
}

// Save re-encodes the session with a refreshed expiry window and
// returns the cookie to attach to the response. Every response that
// touched a session re-issues the cookie even when the contents are
// unchanged, because the expiry window itself advances.
func (s *Store) Save(sess *Session, now time.Time) (*http.Cookie, error) {
	payload, err := encode(sess)
	if err != nil {
		return nil, err
	}

	expiry := now.Add(s.cfg.TTL)
	value, err := s.codec.Encode(payload, expiry)
	if err != nil {
		return nil, err
	}

	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiry,
		MaxAge:   int(s.cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: s.cfg.SameSite,
	}, nil
}
