package frontdoor

const (
	auditEventSessionDecodeFailure = "session_decode_failure"
	auditEventCSRFMismatch         = "csrf_mismatch"
	auditEventValidationFailure    = "validation_failure"
	auditEventThrottleHit          = "throttle_hit"
	auditEventPanicRecovered       = "panic_recovered"
	auditEventCertificateIssued    = "certificate_issued"
)
