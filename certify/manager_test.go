package certify

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"strings"
	"testing"
	"time"
)

func testKeys(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return pub, priv
}

func TestIssueParseRoundTrip(t *testing.T) {
	_, priv := testKeys(t)
	m, err := NewManager(Config{
		TTL:        10 * time.Minute,
		PrivateKey: priv,
		Issuer:     "frontdoor",
		Audience:   "relay",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.Issue("alice@example.com", "ZGVhZGJlZWY", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.PublicKey != "ZGVhZGJlZWY" {
		t.Errorf("PublicKey = %q", claims.PublicKey)
	}
	if claims.Issuer != "frontdoor" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	_, priv := testKeys(t)
	m, err := NewManager(Config{TTL: time.Minute, PrivateKey: priv})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.Issue("bob@example.com", "a2V5", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrCertificateInvalid) {
		t.Fatalf("expired certificate: got %v, want ErrCertificateInvalid", err)
	}
}

func TestParseRejectsForeignSigner(t *testing.T) {
	_, privA := testKeys(t)
	_, privB := testKeys(t)

	issuer, err := NewManager(Config{TTL: time.Minute, PrivateKey: privA})
	if err != nil {
		t.Fatalf("NewManager(issuer): %v", err)
	}
	verifier, err := NewManager(Config{TTL: time.Minute, PrivateKey: privB})
	if err != nil {
		t.Fatalf("NewManager(verifier): %v", err)
	}

	token, err := issuer.Issue("carol@example.com", "a2V5", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrCertificateInvalid) {
		t.Fatalf("foreign signer: got %v, want ErrCertificateInvalid", err)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	_, priv := testKeys(t)
	m, err := NewManager(Config{TTL: time.Minute, PrivateKey: priv})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	token, err := m.Issue("dave@example.com", "a2V5", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := m.Parse(tampered); !errors.Is(err, ErrCertificateInvalid) {
		t.Fatalf("tampered token: got %v, want ErrCertificateInvalid", err)
	}
}

func TestVerifyOnlyManager(t *testing.T) {
	pub, priv := testKeys(t)
	issuer, err := NewManager(Config{TTL: time.Minute, PrivateKey: priv, KeyID: "2026-08"})
	if err != nil {
		t.Fatalf("NewManager(issuer): %v", err)
	}
	verifier, err := NewManager(Config{TTL: time.Minute, PublicKey: pub, KeyID: "2026-08"})
	if err != nil {
		t.Fatalf("NewManager(verifier): %v", err)
	}
	if verifier.CanIssue() {
		t.Error("verify-only manager reports CanIssue")
	}

	token, err := issuer.Issue("erin@example.com", "a2V5", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(token); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := verifier.Issue("erin@example.com", "a2V5", time.Now()); err == nil {
		t.Error("Issue on verify-only manager succeeded")
	}
}

func TestNewManagerConfigValidation(t *testing.T) {
	_, priv := testKeys(t)
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero TTL", Config{PrivateKey: priv}},
		{"negative leeway", Config{TTL: time.Minute, PrivateKey: priv, Leeway: -time.Second}},
		{"oversized leeway", Config{TTL: time.Minute, PrivateKey: priv, Leeway: 3 * time.Minute}},
		{"no keys", Config{TTL: time.Minute}},
		{"garbage private key", Config{TTL: time.Minute, PrivateKey: []byte("short")}},
		{"garbage public key", Config{TTL: time.Minute, PublicKey: []byte("short")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Error("NewManager accepted invalid config")
			}
		})
	}
}
