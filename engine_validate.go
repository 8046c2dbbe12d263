package frontdoor

import (
	"context"
	"strings"

	"github.com/arkadianet/frontdoor/validate"
)

// RuleSetFor describes the rulesetfor operation and its observable behavior.
//
// RuleSetFor may return an error when input validation, dependency calls, or security checks fail.
// RuleSetFor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RuleSetFor(route string) (RuleSet, bool) {
	if e == nil {
		return nil, false
	}
	rules, ok := e.ruleSets[route]
	return rules, ok
}

// ValidateFields describes the validatefields operation and its observable behavior.
//
// ValidateFields may return an error when input validation, dependency calls, or security checks fail.
// ValidateFields does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidateFields(ctx context.Context, route string, fields map[string]string) ([]FieldError, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	rules, ok := e.ruleSets[route]
	if !ok {
		return nil, ErrUnknownRuleSet
	}
	return e.validateWith(ctx, rules, fields), nil
}

// ValidateWith describes the validatewith operation and its observable behavior.
//
// ValidateWith may return an error when input validation, dependency calls, or security checks fail.
// ValidateWith does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidateWith(ctx context.Context, rules RuleSet, fields map[string]string) []FieldError {
	if e == nil {
		return nil
	}
	return e.validateWith(ctx, rules, fields)
}

func (e *Engine) validateWith(ctx context.Context, rules RuleSet, fields map[string]string) []FieldError {
	errs := validate.Validate(rules, fields, validate.Options{
		MinPasswordLength: e.config.Validation.MinPasswordLength,
		MaxFieldBytes:     e.config.Validation.MaxFieldBytes,
	})
	if len(errs) == 0 {
		return nil
	}

	e.metricInc(MetricValidationFailure)
	e.auditEmit(ctx, auditEventValidationFailure, "", false, describeFieldErrors(errs))
	return errs
}

func describeFieldErrors(errs []FieldError) string {
	names := make([]string, 0, len(errs))
	for _, fe := range errs {
		names = append(names, fe.Field+": "+fe.Reason)
	}
	return strings.Join(names, ", ")
}
