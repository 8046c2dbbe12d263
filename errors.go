package frontdoor

import "errors"

var (
	// ErrCSRFMismatch is an exported constant or variable used by the security pipeline.
	ErrCSRFMismatch = errors.New("csrf token mismatch")
	// ErrValidationFailed is an exported constant or variable used by the security pipeline.
	ErrValidationFailed = errors.New("field validation failed")
	// ErrUnknownRuleSet is an exported constant or variable used by the security pipeline.
	ErrUnknownRuleSet = errors.New("unknown validation rule set")
	// ErrThrottled is an exported constant or variable used by the security pipeline.
	ErrThrottled = errors.New("credential route throttled")
	// ErrThrottleUnavailable is an exported constant or variable used by the security pipeline.
	ErrThrottleUnavailable = errors.New("throttle backend unavailable")
	// ErrThrottleDisabled is an exported constant or variable used by the security pipeline.
	ErrThrottleDisabled = errors.New("throttle disabled")
	// ErrCertifyDisabled is an exported constant or variable used by the security pipeline.
	ErrCertifyDisabled = errors.New("certificate issuance disabled")
	// ErrCertificateInvalid is an exported constant or variable used by the security pipeline.
	ErrCertificateInvalid = errors.New("invalid identity certificate")
	// ErrSessionTooLarge is an exported constant or variable used by the security pipeline.
	ErrSessionTooLarge = errors.New("session exceeds encoded cookie size bound")
	// ErrEngineNotReady is an exported constant or variable used by the security pipeline.
	ErrEngineNotReady = errors.New("engine not initialized")
)
