package validate

import (
	"encoding/base64"
	"strings"
	"testing"
)

var signInRules = RuleSet{
	{Field: "email", Kind: KindEmail, Required: true},
	{Field: "password", Kind: KindPassword, Required: true},
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	errs := Validate(signInRules, map[string]string{
		"email":    "user@example.com",
		"password": "correct-horse",
	}, Options{})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateRejectsMalformedEmail(t *testing.T) {
	errs := Validate(signInRules, map[string]string{
		"email":    "not-an-email",
		"password": "correct-horse",
	}, Options{})

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Field != "email" {
		t.Fatalf("failing field = %q, want email", errs[0].Field)
	}
}

func TestValidateAggregatesAllFailures(t *testing.T) {
	// Malformed email AND missing password: both must come back in one
	// verdict, not just the first.
	errs := Validate(signInRules, map[string]string{
		"email": "not-an-email",
	}, Options{})

	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	seen := map[string]string{}
	for _, e := range errs {
		seen[e.Field] = e.Reason
	}
	if seen["email"] != "malformed" {
		t.Fatalf("email reason = %q, want malformed", seen["email"])
	}
	if seen["password"] != "missing" {
		t.Fatalf("password reason = %q, want missing", seen["password"])
	}
}

func TestValidateIgnoresUndeclaredFields(t *testing.T) {
	errs := Validate(signInRules, map[string]string{
		"email":    "user@example.com",
		"password": "correct-horse",
		"theme":    "<script>alert(1)</script>",
	}, Options{})
	if errs != nil {
		t.Fatalf("extra field triggered errors: %v", errs)
	}
}

func TestValidateOptionalFields(t *testing.T) {
	rules := RuleSet{{Field: "nickname", Kind: KindNonEmpty, Required: false}}
	if errs := Validate(rules, map[string]string{}, Options{}); errs != nil {
		t.Fatalf("absent optional field failed: %v", errs)
	}
}

func TestEmailShapes(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co", true},
		{"u@d.io", true},
		{"not-an-email", false},
		{"", false},
		{"@example.com", false},
		{"user@", false},
		{"user@localhost", false}, // no dotted domain
		{"user@@example.com", false},
		{"user@.example.com", false},
		{"user@example.com.", false},
		{"user@exa..mple.com", false},
		{"us er@example.com", false},
		{"user@example.com\n", false},
		{strings.Repeat("a", 65) + "@example.com", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		if got := emailShaped(tt.email); got != tt.ok {
			t.Fatalf("emailShaped(%q) = %v, want %v", tt.email, got, tt.ok)
		}
	}
}

func TestPublicKeyShapes(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(make([]byte, 64))
	unpadded := base64.RawStdEncoding.EncodeToString(make([]byte, 65))
	tooSmall := base64.StdEncoding.EncodeToString(make([]byte, 16))
	tooBig := base64.StdEncoding.EncodeToString(make([]byte, 9000))

	rules := RuleSet{{Field: "pubkey", Kind: KindPublicKey, Required: true}}

	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"64-byte key", valid, true},
		{"unpadded base64", unpadded, true},
		{"16-byte key", tooSmall, false},
		{"9000-byte key", tooBig, false},
		{"not base64", "*** definitely not ***", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(rules, map[string]string{"pubkey": tt.value}, Options{})
			if (errs == nil) != tt.ok {
				t.Fatalf("errors = %v, want ok=%v", errs, tt.ok)
			}
		})
	}
}

func TestPasswordMinimumLength(t *testing.T) {
	rules := RuleSet{{Field: "password", Kind: KindPassword, Required: true}}

	if errs := Validate(rules, map[string]string{"password": "short"}, Options{MinPasswordLength: 10}); len(errs) != 1 || errs[0].Reason != "too short" {
		t.Fatalf("short password: %v", errs)
	}
	if errs := Validate(rules, map[string]string{"password": "long-enough"}, Options{MinPasswordLength: 10}); errs != nil {
		t.Fatalf("valid password rejected: %v", errs)
	}
	// Default minimum is 8.
	if errs := Validate(rules, map[string]string{"password": "12345678"}, Options{}); errs != nil {
		t.Fatalf("8-byte password rejected under default minimum: %v", errs)
	}
}

func TestFieldSizeBound(t *testing.T) {
	rules := RuleSet{{Field: "note", Kind: KindNonEmpty, Required: true}}
	big := strings.Repeat("x", 5000)

	if errs := Validate(rules, map[string]string{"note": big}, Options{}); len(errs) != 1 || errs[0].Reason != "too long" {
		t.Fatalf("oversized field: %v", errs)
	}
	if errs := Validate(rules, map[string]string{"note": big}, Options{MaxFieldBytes: 6000}); errs != nil {
		t.Fatalf("field within raised bound rejected: %v", errs)
	}
}
