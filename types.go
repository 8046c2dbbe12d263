package frontdoor

import (
	"github.com/arkadianet/frontdoor/certify"
	"github.com/arkadianet/frontdoor/headers"
	"github.com/arkadianet/frontdoor/session"
	"github.com/arkadianet/frontdoor/validate"
)

// Session is the per-request mutable key/value state carried by the
// client as an encrypted cookie. It is request-scoped and never shared
// between requests.
type Session = session.Session

// Mode selects the deployment posture for the transport-security
// policy.
type Mode = headers.Mode

const (
	// ModeDevelopment is an exported constant or variable used by the security pipeline.
	ModeDevelopment = headers.ModeDevelopment
	// ModeProduction is an exported constant or variable used by the security pipeline.
	ModeProduction = headers.ModeProduction
)

// Rule is a single declarative field requirement attached to a route.
type Rule = validate.Rule

// RuleSet is the ordered list of rules a route declares.
type RuleSet = validate.RuleSet

// FieldError names one field that failed validation and the reason.
type FieldError = validate.FieldError

// Kind identifies a syntactic field predicate from the closed set the
// validation pipeline supports.
type Kind = validate.Kind

const (
	// KindNonEmpty is an exported constant or variable used by the security pipeline.
	KindNonEmpty = validate.KindNonEmpty
	// KindEmail is an exported constant or variable used by the security pipeline.
	KindEmail = validate.KindEmail
	// KindPassword is an exported constant or variable used by the security pipeline.
	KindPassword = validate.KindPassword
	// KindPublicKey is an exported constant or variable used by the security pipeline.
	KindPublicKey = validate.KindPublicKey
)

// CertificateClaims are the verified contents of an identity
// certificate: the email/public-key binding plus standard time claims.
type CertificateClaims = certify.Claims
