package validate

import (
	"encoding/base64"
	"strings"
)

// Kind is the closed set of syntactic field shapes the pipeline can
// check. Every kind is a pure predicate: no rule ever consults
// persistent state, so "is this email registered" never belongs here.
type Kind int

const (
	// KindNonEmpty accepts any non-empty value within the size bound.
	KindNonEmpty Kind = iota
	// KindEmail accepts RFC-shaped addresses: one @, a non-empty local
	// part, and a dotted domain.
	KindEmail
	// KindPassword accepts values meeting the configured minimum
	// length. Strength policy beyond length is out of scope.
	KindPassword
	// KindPublicKey accepts base64-encoded key material of plausible
	// size.
	KindPublicKey
)

func (k Kind) String() string {
	switch k {
	case KindNonEmpty:
		return "non_empty"
	case KindEmail:
		return "email"
	case KindPassword:
		return "password"
	case KindPublicKey:
		return "public_key"
	default:
		return "unknown"
	}
}

// Rule names one field requirement on a route. Rules are stateless and
// shared across requests.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
}

// RuleSet is the ordered field requirements a route declares.
type RuleSet []Rule

// FieldError reports one failing field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Options tunes the shared predicates.
type Options struct {
	// MinPasswordLength is the KindPassword minimum, in bytes.
	MinPasswordLength int
	// MaxFieldBytes bounds every field value. Zero means 4096.
	MaxFieldBytes int
}

const defaultMaxFieldBytes = 4096

const (
	reasonMissing   = "missing"
	reasonTooLong   = "too long"
	reasonMalformed = "malformed"
	reasonTooShort  = "too short"
)

// Validate checks fields against rules and returns every failing field,
// not just the first, so a client can repair all problems in one round
// trip. Undeclared extra fields are ignored; declared required fields
// that are absent fail with "missing". A nil result means the input
// passed.
func Validate(rules RuleSet, fields map[string]string, opts Options) []FieldError {
	maxBytes := opts.MaxFieldBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxFieldBytes
	}

	var errs []FieldError
	for _, rule := range rules {
		value, present := fields[rule.Field]
		if !present || value == "" {
			if rule.Required {
				errs = append(errs, FieldError{Field: rule.Field, Reason: reasonMissing})
			}
			continue
		}
		if len(value) > maxBytes {
			errs = append(errs, FieldError{Field: rule.Field, Reason: reasonTooLong})
			continue
		}

		if reason := check(rule.Kind, value, opts); reason != "" {
			errs = append(errs, FieldError{Field: rule.Field, Reason: reason})
		}
	}

	return errs
}

func check(kind Kind, value string, opts Options) string {
	switch kind {
	case KindNonEmpty:
		return ""
	case KindEmail:
		if !emailShaped(value) {
			return reasonMalformed
		}
	case KindPassword:
		min := opts.MinPasswordLength
		if min <= 0 {
			min = 8
		}
		if len(value) < min {
			return reasonTooShort
		}
	case KindPublicKey:
		if !publicKeyShaped(value) {
			return reasonMalformed
		}
	default:
		return reasonMalformed
	}
	return ""
}

// emailShaped is a syntactic check only: exactly one @, a non-empty
// local part, a dotted domain, and no whitespace or control bytes.
// Deliverability is the business layer's problem.
func emailShaped(s string) bool {
	if len(s) > 254 {
		return false
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if local == "" || len(local) > 64 {
		return false
	}

	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c == 0x7F {
			return false
		}
	}

	return true
}

const (
	minPublicKeyBytes = 32
	maxPublicKeyBytes = 8192
)

// publicKeyShaped accepts standard-base64 key material within sane
// bounds. The provisioning layer parses the actual key; this only keeps
// garbage out of the handler.
func publicKeyShaped(s string) bool {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return false
		}
	}
	return len(raw) >= minPublicKeyBytes && len(raw) <= maxPublicKeyBytes
}
