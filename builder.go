package frontdoor

import (
	"errors"
	"log"

	"github.com/arkadianet/frontdoor/certify"
	"github.com/arkadianet/frontdoor/cookie"
	"github.com/arkadianet/frontdoor/csrf"
	"github.com/arkadianet/frontdoor/headers"
	"github.com/arkadianet/frontdoor/internal/rate"
	"github.com/arkadianet/frontdoor/session"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by frontdoor APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	ruleSets  map[string]RuleSet
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config:   defaultConfig(),
		ruleSets: make(map[string]RuleSet),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithMasterKey describes the withmasterkey operation and its observable behavior.
//
// WithMasterKey may return an error when input validation, dependency calls, or security checks fail.
// WithMasterKey does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMasterKey(key []byte) *Builder {
	b.config.Keys.MasterKey = cloneBytes(key)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithRuleSet describes the withruleset operation and its observable behavior.
//
// WithRuleSet may return an error when input validation, dependency calls, or security checks fail.
// WithRuleSet does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRuleSet(route string, rules RuleSet) *Builder {
	if b.ruleSets == nil {
		b.ruleSets = make(map[string]RuleSet)
	}
	b.ruleSets[route] = rules
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Throttle.Enabled && b.redis == nil {
		return nil, errors.New("throttle requires redis client")
	}

	mode := headers.ModeDevelopment
	if cfg.Security.ProductionMode {
		mode = headers.ModeProduction
	}
	policy, err := headers.New(headers.Config{
		Mode:       mode,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		APIPrefix:  cfg.Security.APIPrefix,
	})
	if err != nil {
		return nil, err
	}
	if mode == headers.ModeDevelopment {
		log.Println("frontdoor: development mode, session cookies are not transport-protected")
	}

	codec, err := cookie.NewCodec(cfg.Keys.MasterKey)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(codec, session.Config{
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     policy.SecureCookies(),
		SameSite:   cfg.Session.SameSite,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:   cfg,
		codec:    codec,
		sessions: store,
		guard:    csrf.NewGuard(),
		headers:  policy,
		ruleSets: make(map[string]RuleSet, len(b.ruleSets)),
	}
	for route, rules := range b.ruleSets {
		engine.ruleSets[route] = rules
	}

	if cfg.Throttle.Enabled {
		engine.limiter = rate.New(b.redis, rate.Config{
			EnableIPThrottle: cfg.Throttle.EnableIPThrottle,
			MaxAttempts:      cfg.Throttle.MaxAttempts,
			Cooldown:         cfg.Throttle.Cooldown,
		})
	}

	if cfg.Certify.Enabled {
		cm, err := certify.NewManager(certify.Config{
			TTL:          cfg.Certify.TTL,
			PrivateKey:   cloneBytes(cfg.Certify.PrivateKey),
			PublicKey:    cloneBytes(cfg.Certify.PublicKey),
			Issuer:       cfg.Certify.Issuer,
			Audience:     cfg.Certify.Audience,
			KeyID:        cfg.Certify.KeyID,
			Leeway:       cfg.Certify.Leeway,
			MaxFutureIAT: cfg.Certify.MaxFutureIAT,
		})
		if err != nil {
			return nil, err
		}
		engine.certifier = cm
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
