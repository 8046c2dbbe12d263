package internaldefs

import (
	frontdoor "github.com/arkadianet/frontdoor"
)

// CounterDef defines a public type used by frontdoor APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   frontdoor.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by frontdoor APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   frontdoor.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the security pipeline.
var CounterDefs = []CounterDef{
	{ID: frontdoor.MetricSessionIssued, Name: "frontdoor_session_issued_total", Help: "Fresh sessions issued."},
	{ID: frontdoor.MetricSessionRestored, Name: "frontdoor_session_restored_total", Help: "Sessions restored from a verified cookie."},
	{ID: frontdoor.MetricSessionDecodeFailure, Name: "frontdoor_session_decode_failure_total", Help: "Presented cookies rejected as malformed, tampered, or expired."},
	{ID: frontdoor.MetricCSRFIssued, Name: "frontdoor_csrf_issued_total", Help: "CSRF tokens issued."},
	{ID: frontdoor.MetricCSRFVerified, Name: "frontdoor_csrf_verified_total", Help: "CSRF tokens verified successfully."},
	{ID: frontdoor.MetricCSRFMismatch, Name: "frontdoor_csrf_mismatch_total", Help: "State-changing requests rejected for CSRF mismatch."},
	{ID: frontdoor.MetricValidationFailure, Name: "frontdoor_validation_failure_total", Help: "Requests rejected by field validation."},
	{ID: frontdoor.MetricThrottleHit, Name: "frontdoor_throttle_hit_total", Help: "Credential-route attempts rejected by the throttle."},
	{ID: frontdoor.MetricCertificateIssued, Name: "frontdoor_certificate_issued_total", Help: "Identity certificates issued."},
	{ID: frontdoor.MetricPanicRecovered, Name: "frontdoor_panic_recovered_total", Help: "Handler panics recovered at the pipeline boundary."},
}

// HistogramDefs is an exported constant or variable used by the security pipeline.
var HistogramDefs = []HistogramDef{
	{ID: frontdoor.MetricPipelineLatency, Name: "frontdoor_pipeline_latency_seconds", Help: "Security pipeline latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the security pipeline.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the security pipeline.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
