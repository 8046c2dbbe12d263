package frontdoor

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config defines a public type used by frontdoor APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Keys       KeysConfig
	Session    SessionConfig
	Security   SecurityConfig
	CSRF       CSRFConfig
	Validation ValidationConfig
	Throttle   ThrottleConfig
	Certify    CertifyConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
KEYS CONFIG
====================================
*/

// KeysConfig defines a public type used by frontdoor APIs.
//
// KeysConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type KeysConfig struct {
	// MasterKey is the process-lifetime secret the cookie encryption and
	// authentication keys are derived from. It must be at least 32 bytes
	// and is never logged.
	MasterKey []byte
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by frontdoor APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	TTL        time.Duration
	CookieName string
	SameSite   http.SameSite
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by frontdoor APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	ProductionMode bool
	HSTSMaxAge     time.Duration
	APIPrefix      string
}

// CSRFConfig defines a public type used by frontdoor APIs.
//
// CSRFConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CSRFConfig struct {
	Protection bool
	FormField  string
	HeaderName string
}

// ValidationConfig defines a public type used by frontdoor APIs.
//
// ValidationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ValidationConfig struct {
	MinPasswordLength int
	MaxFieldBytes     int
}

// ThrottleConfig defines a public type used by frontdoor APIs.
//
// ThrottleConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ThrottleConfig struct {
	Enabled          bool
	EnableIPThrottle bool
	MaxAttempts      int
	Cooldown         time.Duration
}

// CertifyConfig defines a public type used by frontdoor APIs.
//
// CertifyConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CertifyConfig struct {
	Enabled      bool
	TTL          time.Duration
	PrivateKey   []byte
	PublicKey    []byte
	Issuer       string
	Audience     string
	KeyID        string
	Leeway       time.Duration
	MaxFutureIAT time.Duration
}

// AuditConfig defines a public type used by frontdoor APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by frontdoor APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			TTL:        1 * time.Hour,
			CookieName: "fd_session",
			SameSite:   http.SameSiteStrictMode,
		},
		Security: SecurityConfig{
			ProductionMode: false,
			HSTSMaxAge:     180 * 24 * time.Hour,
			APIPrefix:      "/api/",
		},
		CSRF: CSRFConfig{
			Protection: true,
			FormField:  "csrf_token",
			HeaderName: "X-CSRF-Token",
		},
		Validation: ValidationConfig{
			MinPasswordLength: 8,
			MaxFieldBytes:     4096,
		},
		Throttle: ThrottleConfig{
			Enabled:          false,
			EnableIPThrottle: true,
			MaxAttempts:      5,
			Cooldown:         15 * time.Minute,
		},
		Certify: CertifyConfig{
			Enabled:      false,
			TTL:          10 * time.Minute,
			Leeway:       30 * time.Second,
			MaxFutureIAT: 10 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Keys.MasterKey = cloneBytes(cfg.Keys.MasterKey)
	out.Certify.PrivateKey = cloneBytes(cfg.Certify.PrivateKey)
	out.Certify.PublicKey = cloneBytes(cfg.Certify.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Keys
	if len(c.Keys.MasterKey) < 32 {
		return errors.New("Keys MasterKey must be at least 32 bytes")
	}

	// Session
	if c.Session.TTL <= 0 {
		return errors.New("Session TTL must be > 0")
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("Session CookieName is required")
	}
	if strings.ContainsAny(c.Session.CookieName, " ;,=") {
		return errors.New("Session CookieName contains invalid characters")
	}
	switch c.Session.SameSite {
	case http.SameSiteDefaultMode, http.SameSiteLaxMode, http.SameSiteStrictMode:
		// valid
	case http.SameSiteNoneMode:
		return errors.New("Session SameSite none is not allowed for a login flow")
	default:
		return errors.New("Session SameSite is invalid")
	}

	// Security
	if !strings.HasPrefix(c.Security.APIPrefix, "/") {
		return errors.New("Security APIPrefix must start with /")
	}
	if c.Security.HSTSMaxAge < 0 {
		return errors.New("Security HSTSMaxAge must be >= 0")
	}

	// CSRF
	if c.CSRF.Protection {
		if strings.TrimSpace(c.CSRF.FormField) == "" {
			return errors.New("CSRF FormField is required when protection is enabled")
		}
		if strings.TrimSpace(c.CSRF.HeaderName) == "" {
			return errors.New("CSRF HeaderName is required when protection is enabled")
		}
	}

	// Validation
	if c.Validation.MinPasswordLength < 1 {
		return errors.New("Validation MinPasswordLength must be >= 1")
	}
	if c.Validation.MaxFieldBytes <= 0 {
		return errors.New("Validation MaxFieldBytes must be > 0")
	}

	// Throttle
	if c.Throttle.Enabled {
		if c.Throttle.MaxAttempts <= 0 {
			return errors.New("Throttle MaxAttempts must be > 0")
		}
		if c.Throttle.Cooldown <= 0 {
			return errors.New("Throttle Cooldown must be > 0")
		}
	}

	// Certify
	if c.Certify.Enabled {
		if c.Certify.TTL <= 0 {
			return errors.New("Certify TTL must be > 0")
		}
		if len(c.Certify.PrivateKey) == 0 && len(c.Certify.PublicKey) == 0 {
			return errors.New("Certify requires a private or public key when enabled")
		}
		if c.Certify.Leeway < 0 || c.Certify.Leeway > 2*time.Minute {
			return errors.New("Certify Leeway must be between 0 and 2m")
		}
		if c.Certify.MaxFutureIAT < 0 || c.Certify.MaxFutureIAT > 24*time.Hour {
			return errors.New("Certify MaxFutureIAT must be between 0 and 24h")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	if c.Security.ProductionMode {
		if c.Security.HSTSMaxAge <= 0 {
			return errors.New("ProductionMode requires Security HSTSMaxAge > 0")
		}
		if !c.CSRF.Protection {
			return errors.New("ProductionMode requires CSRF Protection")
		}
		if c.Session.TTL > 30*24*time.Hour {
			return errors.New("ProductionMode requires Session TTL <= 30d")
		}
		if c.Certify.Enabled && c.Certify.TTL > 24*time.Hour {
			return errors.New("ProductionMode requires Certify TTL <= 24h")
		}
	}

	return nil
}
