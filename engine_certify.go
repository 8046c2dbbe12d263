package frontdoor

import (
	"context"
	"time"
)

var certificateInputRules = RuleSet{
	{Field: "email", Kind: KindEmail, Required: true},
	{Field: "pubkey", Kind: KindPublicKey, Required: true},
}

// CertifyEnabled describes the certifyenabled operation and its observable behavior.
//
// CertifyEnabled may return an error when input validation, dependency calls, or security checks fail.
// CertifyEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CertifyEnabled() bool {
	return e != nil && e.certifier != nil
}

// IssueCertificate describes the issuecertificate operation and its observable behavior.
//
// IssueCertificate may return an error when input validation, dependency calls, or security checks fail.
// IssueCertificate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) IssueCertificate(ctx context.Context, email, publicKey string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	if e.certifier == nil || !e.certifier.CanIssue() {
		return "", ErrCertifyDisabled
	}

	// Certificates bind exactly what provisioning validated; re-check the
	// shape here so a handler bug cannot sign garbage.
	if errs := e.validateWith(ctx, certificateInputRules, map[string]string{
		"email":  email,
		"pubkey": publicKey,
	}); len(errs) > 0 {
		return "", ErrValidationFailed
	}

	token, err := e.certifier.Issue(email, publicKey, time.Now())
	if err != nil {
		return "", err
	}

	e.metricInc(MetricCertificateIssued)
	e.auditEmit(ctx, auditEventCertificateIssued, "", true, "")
	return token, nil
}

// VerifyCertificate describes the verifycertificate operation and its observable behavior.
//
// VerifyCertificate may return an error when input validation, dependency calls, or security checks fail.
// VerifyCertificate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) VerifyCertificate(token string) (*CertificateClaims, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if e.certifier == nil {
		return nil, ErrCertifyDisabled
	}

	claims, err := e.certifier.Parse(token)
	if err != nil {
		return nil, ErrCertificateInvalid
	}
	return claims, nil
}
