package frontdoor

import "time"

type SecurityReport struct {
	ProductionMode    bool
	SessionTTL        time.Duration
	CookieName        string
	SecureCookies     bool
	HSTSMaxAge        time.Duration
	APIPrefix         string
	CSRFProtection    bool
	MinPasswordLength int
	MaxFieldBytes     int
	ThrottleActive    bool
	CertifyActive     bool
	AuditActive       bool
	MetricsActive     bool
}

func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		ProductionMode:    e.config.Security.ProductionMode,
		SessionTTL:        e.config.Session.TTL,
		CookieName:        e.config.Session.CookieName,
		SecureCookies:     e.headers != nil && e.headers.SecureCookies(),
		HSTSMaxAge:        e.config.Security.HSTSMaxAge,
		APIPrefix:         e.config.Security.APIPrefix,
		CSRFProtection:    e.config.CSRF.Protection,
		MinPasswordLength: e.config.Validation.MinPasswordLength,
		MaxFieldBytes:     e.config.Validation.MaxFieldBytes,
		ThrottleActive:    e.limiter != nil,
		CertifyActive:     e.certifier != nil,
		AuditActive:       e.audit != nil,
		MetricsActive:     e.metrics.Enabled(),
	}
}
