package test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	frontdoor "github.com/arkadianet/frontdoor"
	"github.com/arkadianet/frontdoor/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func pipelineConfig() frontdoor.Config {
	cfg := frontdoor.DefaultConfig()
	cfg.Keys.MasterKey = []byte("0123456789abcdef0123456789abcdef")
	return cfg
}

// newPipelineServer stands up the full security pipeline around a small
// application mux: a welcome route that issues CSRF tokens and a sign-in
// route guarded by validation.
func newPipelineServer(t *testing.T, mutate func(*frontdoor.Config), opts ...func(*frontdoor.Builder)) (*httptest.Server, *frontdoor.Engine) {
	t.Helper()

	cfg := pipelineConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	b := frontdoor.New().
		WithConfig(cfg).
		WithRuleSet("/api/sign_in", frontdoor.RuleSet{
			{Field: "email", Kind: frontdoor.KindEmail, Required: true},
			{Field: "password", Kind: frontdoor.KindPassword, Required: true},
		}).
		WithRuleSet("/api/provision", frontdoor.RuleSet{
			{Field: "email", Kind: frontdoor.KindEmail, Required: true},
			{Field: "pubkey", Kind: frontdoor.KindPublicKey, Required: true},
		})
	for _, opt := range opts {
		opt(b)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFromContext(r.Context())
		token, err := engine.IssueCSRF(sess)
		if err != nil {
			http.Error(w, "csrf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"csrf_token": token})
	})
	mux.HandleFunc("POST /api/sign_in", func(w http.ResponseWriter, r *http.Request) {
		fields, _ := middleware.FieldsFromContext(r.Context())
		sess, _ := middleware.SessionFromContext(r.Context())
		sess.Set("user", fields["email"])
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"user": fields["email"]})
	})
	mux.HandleFunc("POST /api/provision", func(w http.ResponseWriter, r *http.Request) {
		fields, _ := middleware.FieldsFromContext(r.Context())
		cert, err := engine.IssueCertificate(r.Context(), fields["email"], fields["pubkey"])
		if err != nil {
			http.Error(w, "certificate", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"certificate": cert})
	})

	srv := httptest.NewServer(middleware.Secure(engine, middleware.WithThrottleKey(
		func(r *http.Request, fields map[string]string) string {
			if r.URL.Path == "/api/sign_in" {
				return fields["email"]
			}
			return ""
		},
	))(mux))
	t.Cleanup(srv.Close)

	return srv, engine
}

func newIntegrationRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func newSessionClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// fetchCSRFToken performs the welcome GET, storing the session cookie in
// the client's jar and returning the issued token.
func fetchCSRFToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()

	resp, err := client.Get(baseURL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / returned %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"csrf_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode welcome body: %v", err)
	}
	if body.Token == "" {
		t.Fatal("welcome response carried no CSRF token")
	}
	return body.Token
}

func postSignIn(t *testing.T, client *http.Client, baseURL, token, email, password string) *http.Response {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/sign_in", strings.NewReader(string(payload)))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST /api/sign_in: %v", err)
	}
	return resp
}
