package frontdoor

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
)

func signInRules() RuleSet {
	return RuleSet{
		{Field: "email", Kind: KindEmail, Required: true},
		{Field: "password", Kind: KindPassword, Required: true},
	}
}

func TestValidateFieldsUnknownRoute(t *testing.T) {
	engine := newBuiltEngine(t, nil)

	_, err := engine.ValidateFields(context.Background(), "/api/unknown", map[string]string{})
	if err != ErrUnknownRuleSet {
		t.Fatalf("expected ErrUnknownRuleSet, got %v", err)
	}
}

func TestValidateFieldsAggregatesAllFailures(t *testing.T) {
	engine := newBuiltEngine(t, func(c *Config) {
		c.Metrics.Enabled = true
	}, func(b *Builder) {
		b.WithRuleSet("/api/sign_in", signInRules())
	})

	errs, err := engine.ValidateFields(context.Background(), "/api/sign_in", map[string]string{
		"email":    "not-an-email",
		"password": "short",
	})
	if err != nil {
		t.Fatalf("ValidateFields failed: %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected both fields to fail, got %v", errs)
	}
	if engine.metrics.Value(MetricValidationFailure) != 1 {
		t.Fatal("expected one validation failure metric per request")
	}
}

func TestValidateFieldsReasons(t *testing.T) {
	engine := newBuiltEngine(t, nil, func(b *Builder) {
		b.WithRuleSet("/api/provision", RuleSet{
			{Field: "email", Kind: KindEmail, Required: true},
			{Field: "password", Kind: KindPassword, Required: true},
			{Field: "pubkey", Kind: KindPublicKey, Required: true},
			{Field: "note", Kind: KindNonEmpty, Required: false},
		})
	})

	tests := []struct {
		name   string
		fields map[string]string
		field  string
		reason string
	}{
		{
			name:   "missing required field",
			fields: map[string]string{"password": "longenough", "pubkey": validTestPubKey()},
			field:  "email",
			reason: "missing",
		},
		{
			name: "oversized field",
			fields: map[string]string{
				"email":    "a@b.example",
				"password": "longenough",
				"pubkey":   validTestPubKey(),
				"note":     strings.Repeat("x", 5000),
			},
			field:  "note",
			reason: "too long",
		},
		{
			name: "malformed email",
			fields: map[string]string{
				"email":    "no-at-sign",
				"password": "longenough",
				"pubkey":   validTestPubKey(),
			},
			field:  "email",
			reason: "malformed",
		},
		{
			name: "short password",
			fields: map[string]string{
				"email":    "a@b.example",
				"password": "short",
				"pubkey":   validTestPubKey(),
			},
			field:  "password",
			reason: "too short",
		},
		{
			name: "malformed public key",
			fields: map[string]string{
				"email":    "a@b.example",
				"password": "longenough",
				"pubkey":   "!!not base64!!",
			},
			field:  "pubkey",
			reason: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := engine.ValidateFields(context.Background(), "/api/provision", tt.fields)
			if err != nil {
				t.Fatalf("ValidateFields failed: %v", err)
			}
			if len(errs) != 1 {
				t.Fatalf("expected exactly one failure, got %v", errs)
			}
			if errs[0].Field != tt.field || errs[0].Reason != tt.reason {
				t.Fatalf("expected %s/%s, got %s/%s", tt.field, tt.reason, errs[0].Field, errs[0].Reason)
			}
		})
	}
}

func TestValidateFieldsAcceptsCleanInput(t *testing.T) {
	engine := newBuiltEngine(t, nil, func(b *Builder) {
		b.WithRuleSet("/api/sign_in", signInRules())
	})

	errs, err := engine.ValidateFields(context.Background(), "/api/sign_in", map[string]string{
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	if err != nil {
		t.Fatalf("ValidateFields failed: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected no failures, got %v", errs)
	}
}

func TestValidateWithCustomRules(t *testing.T) {
	engine := newBuiltEngine(t, nil)

	errs := engine.ValidateWith(context.Background(), RuleSet{
		{Field: "token", Kind: KindNonEmpty, Required: true},
	}, map[string]string{})

	if len(errs) != 1 || errs[0].Reason != "missing" {
		t.Fatalf("expected a missing token failure, got %v", errs)
	}
}

func validTestPubKey() string {
	return base64.StdEncoding.EncodeToString(make([]byte, 32))
}
