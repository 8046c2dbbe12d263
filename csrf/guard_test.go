package csrf

import (
	"net/http"
	"testing"
	"time"

	"github.com/arkadianet/frontdoor/session"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return sess
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	g := NewGuard()
	sess := newSession(t)

	token, err := g.Issue(sess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !g.Verify(sess, token) {
		t.Fatal("freshly issued token failed verification")
	}

	// Multiple issues against one session all verify: the secret is
	// stable even though each token carries a fresh nonce.
	second, err := g.Issue(sess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if second == token {
		t.Fatal("two issues produced identical tokens (nonce reuse)")
	}
	if !g.Verify(sess, second) || !g.Verify(sess, token) {
		t.Fatal("both issued tokens must verify against the session")
	}
}

func TestCrossSessionTokenRejected(t *testing.T) {
	g := NewGuard()
	a := newSession(t)
	b := newSession(t)

	// Identical user-visible content; the binding is the secret alone.
	a.Set("email", "same@example.com")
	b.Set("email", "same@example.com")

	token, err := g.Issue(a)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if g.Verify(b, token) {
		t.Fatal("token for session A verified against session B")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	g := NewGuard()
	sess := newSession(t)

	token, err := g.Issue(sess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	bad := []string{
		"",
		"AAAA",
		token[:len(token)-2],
		token + "AA",
		"!!!not-base64!!!",
	}
	for _, supplied := range bad {
		if g.Verify(sess, supplied) {
			t.Fatalf("Verify(%q) = true, want false", supplied)
		}
	}

	// Single character corruption must fail.
	corrupted := []byte(token)
	if corrupted[0] == 'A' {
		corrupted[0] = 'B'
	} else {
		corrupted[0] = 'A'
	}
	if g.Verify(sess, string(corrupted)) {
		t.Fatal("corrupted token verified")
	}
}

func TestStateChanging(t *testing.T) {
	changing := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	for _, m := range changing {
		if !StateChanging(m) {
			t.Fatalf("StateChanging(%s) = false", m)
		}
	}
	safe := []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace}
	for _, m := range safe {
		if StateChanging(m) {
			t.Fatalf("StateChanging(%s) = true", m)
		}
	}
}
