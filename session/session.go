package session

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

const csrfSecretSize = 32

// Session is the per-request mutable state carried by the client as an
// encrypted cookie. It is owned exclusively by one request/response
// cycle and is never shared across goroutines, so no locking is needed.
//
// The CSRF secret is fixed at creation and never rotates for the life
// of the session; tokens minted from it stay valid until the session
// itself is replaced.
type Session struct {
	ID         string
	CSRFSecret []byte
	IssuedAt   time.Time

	values map[string]any
}

type sessionWire struct {
	ID         string         `json:"id"`
	CSRFSecret []byte         `json:"cs"`
	IssuedAt   int64          `json:"iat"`
	Values     map[string]any `json:"v,omitempty"`
}

// New creates an empty session with a fresh identity and CSRF secret.
func New(now time.Time) (*Session, error) {
	secret := make([]byte, csrfSecretSize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, err
	}

	return &Session{
		ID:         uuid.NewString(),
		CSRFSecret: secret,
		IssuedAt:   now,
		values:     make(map[string]any),
	}, nil
}

// Get returns the value stored under key, or nil.
func (s *Session) Get(key string) any {
	if s == nil || s.values == nil {
		return nil
	}
	return s.values[key]
}

// GetString returns a string value stored under key, or "".
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key).(string)
	return v
}

// Set stores a JSON-compatible value under key.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
}

// Delete removes key from the session.
func (s *Session) Delete(key string) {
	if s == nil || s.values == nil {
		return
	}
	delete(s.values, key)
}

// Clear drops all handler-visible values. The session identity and
// CSRF secret survive; callers wanting a clean break should let the
// store issue a fresh session instead.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.values = make(map[string]any)
}

// Len reports the number of stored values.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

func encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	if len(s.CSRFSecret) != csrfSecretSize {
		return nil, errors.New("session missing CSRF secret")
	}

	return json.Marshal(sessionWire{
		ID:         s.ID,
		CSRFSecret: s.CSRFSecret,
		IssuedAt:   s.IssuedAt.Unix(),
		Values:     s.values,
	})
}

func decode(data []byte) (*Session, error) {
	var w sessionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.ID == "" || len(w.CSRFSecret) != csrfSecretSize {
		return nil, errors.New("invalid session payload")
	}

	values := w.Values
	if values == nil {
		values = make(map[string]any)
	}

	return &Session{
		ID:         w.ID,
		CSRFSecret: w.CSRFSecret,
		IssuedAt:   time.Unix(w.IssuedAt, 0),
		values:     values,
	}, nil
}
