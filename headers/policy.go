package headers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Mode selects the deployment posture. It is fixed at startup and
// read-only for the process lifetime.
type Mode int

const (
	// ModeDevelopment serves plaintext HTTP locally: no HSTS, no
	// secure-only cookies. The builder logs a startup warning.
	ModeDevelopment Mode = iota
	// ModeProduction assumes an SSL terminator upstream: HSTS is
	// emitted and session cookies are marked secure.
	ModeProduction
)

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeProduction:
		return "production"
	default:
		return "unknown"
	}
}

const cacheControlValue = "no-cache, max-age=0"

// Config holds the transport-security policy knobs.
type Config struct {
	Mode Mode

	// HSTSMaxAge is the Strict-Transport-Security lifetime emitted in
	// production mode. Subdomains are always included.
	HSTSMaxAge time.Duration

	// APIPrefix marks the path namespace whose responses must never be
	// cached. Defaults to "/api/".
	APIPrefix string
}

// Policy decides which transport-security and cache headers every
// response carries. It is decided once at startup and applied
// uniformly; per-request work is two string comparisons.
type Policy struct {
	cfg       Config
	hstsValue string
}

// New creates a [Policy]. In production mode the HSTS lifetime must be
// positive.
func New(cfg Config) (*Policy, error) {
	switch cfg.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return nil, errors.New("invalid security mode")
	}
	if cfg.Mode == ModeProduction && cfg.HSTSMaxAge <= 0 {
		return nil, errors.New("production mode requires HSTSMaxAge > 0")
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/"
	}
	if !strings.HasPrefix(cfg.APIPrefix, "/") {
		return nil, errors.New("APIPrefix must start with /")
	}

	p := &Policy{cfg: cfg}
	if cfg.Mode == ModeProduction {
		p.hstsValue = "max-age=" + strconv.FormatInt(int64(cfg.HSTSMaxAge/time.Second), 10) + "; includeSubDomains"
	}
	return p, nil
}

// Mode returns the configured deployment mode.
func (p *Policy) Mode() Mode {
	return p.cfg.Mode
}

// SecureCookies reports whether session cookies must be marked secure.
// This is the verdict the session store consumes: true exactly when the
// deployment sits behind an SSL terminator.
func (p *Policy) SecureCookies() bool {
	return p.cfg.Mode == ModeProduction
}

// HSTSValue returns the Strict-Transport-Security header value, or ""
// in development mode.
func (p *Policy) HSTSValue() string {
	return p.hstsValue
}

// Apply attaches the policy's headers to the response: HSTS in
// production, and cache suppression for any path under the API
// namespace.
func (p *Policy) Apply(w http.ResponseWriter, r *http.Request) {
	if p.hstsValue != "" {
		w.Header().Set("Strict-Transport-Security", p.hstsValue)
	}
	if strings.HasPrefix(r.URL.Path, p.cfg.APIPrefix) {
		w.Header().Set("Cache-Control", cacheControlValue)
	}
}
