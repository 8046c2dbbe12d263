package frontdoor

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestCSRFRoundTrip(t *testing.T) {
	engine := newBuiltEngine(t, func(c *Config) {
		c.Metrics.Enabled = true
	})
	now := time.Now()

	sess, _ := engine.LoadSession(context.Background(), requestWithCookie("", ""), now)

	token, err := engine.IssueCSRF(sess)
	if err != nil {
		t.Fatalf("IssueCSRF failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	if err := engine.VerifyCSRF(context.Background(), sess, token); err != nil {
		t.Fatalf("VerifyCSRF failed: %v", err)
	}
	if engine.metrics.Value(MetricCSRFVerified) != 1 {
		t.Fatal("expected a verified metric")
	}
}

func TestCSRFMismatchRejected(t *testing.T) {
	engine := newBuiltEngine(t, func(c *Config) {
		c.Metrics.Enabled = true
	})
	now := time.Now()

	sess, _ := engine.LoadSession(context.Background(), requestWithCookie("", ""), now)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-token"},
		{name: "truncated base64", token: "QUFBQQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := engine.VerifyCSRF(context.Background(), sess, tt.token); err != ErrCSRFMismatch {
				t.Fatalf("expected ErrCSRFMismatch, got %v", err)
			}
		})
	}

	if got := engine.metrics.Value(MetricCSRFMismatch); got != uint64(len(tests)) {
		t.Fatalf("expected %d mismatch metrics, got %d", len(tests), got)
	}
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	engine := newBuiltEngine(t, nil)
	now := time.Now()

	alice, _ := engine.LoadSession(context.Background(), requestWithCookie("", ""), now)
	mallory, _ := engine.LoadSession(context.Background(), requestWithCookie("", ""), now)

	token, err := engine.IssueCSRF(alice)
	if err != nil {
		t.Fatalf("IssueCSRF failed: %v", err)
	}

	if err := engine.VerifyCSRF(context.Background(), mallory, token); err != ErrCSRFMismatch {
		t.Fatalf("token from another session must be rejected, got %v", err)
	}
}

func TestCSRFTokensRotatePerIssue(t *testing.T) {
	engine := newBuiltEngine(t, nil)
	now := time.Now()

	sess, _ := engine.LoadSession(context.Background(), requestWithCookie("", ""), now)

	first, _ := engine.IssueCSRF(sess)
	second, _ := engine.IssueCSRF(sess)
	if first == second {
		t.Fatal("each issued token must carry a fresh nonce")
	}

	// Both remain valid against the same session secret.
	if err := engine.VerifyCSRF(context.Background(), sess, first); err != nil {
		t.Fatalf("first token rejected: %v", err)
	}
	if err := engine.VerifyCSRF(context.Background(), sess, second); err != nil {
		t.Fatalf("second token rejected: %v", err)
	}
}

func TestStateChangingMethods(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{http.MethodGet, false},
		{http.MethodHead, false},
		{http.MethodOptions, false},
		{http.MethodPost, true},
		{http.MethodPut, true},
		{http.MethodPatch, true},
		{http.MethodDelete, true},
	}

	for _, tt := range tests {
		if got := StateChanging(tt.method); got != tt.want {
			t.Fatalf("StateChanging(%s) = %v, want %v", tt.method, got, tt.want)
		}
	}
}
