package middleware

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	frontdoor "github.com/arkadianet/frontdoor"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MiB

type options struct {
	throttleKey  func(r *http.Request, fields map[string]string) string
	maxBodyBytes int64
}

// Option tunes the [Secure] pipeline.
type Option func(*options)

// WithThrottleKey installs the function that names the throttle bucket
// for a state-changing request, typically the submitted email address.
// An empty key skips throttling for that request.
func WithThrottleKey(fn func(r *http.Request, fields map[string]string) string) Option {
	return func(o *options) { o.throttleKey = fn }
}

// WithMaxBodyBytes bounds how much of a request body the field parser
// will read. Defaults to 1 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// Secure wraps a handler with the full security pipeline. Stages run in
// a fixed order and each may short-circuit with a client error; the
// wrapped handler only ever sees requests that passed every stage.
func Secure(engine *frontdoor.Engine, opts ...Option) func(http.Handler) http.Handler {
	o := options{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			start := time.Now()
			defer func() { engine.ObservePipelineLatency(time.Since(start)) }()

			ctx := frontdoor.WithClientIP(r.Context(), clientIP(r))
			ctx = frontdoor.WithRequestPath(ctx, r.URL.Path)

			defer func() {
				if rec := recover(); rec != nil {
					engine.RecordPanic(ctx, fmt.Sprint(rec))
					log.Printf("frontdoor: panic serving %s: %v\n%s", r.URL.Path, rec, debug.Stack())
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()

			engine.ApplyHeaders(w, r)

			sess, err := engine.LoadSession(ctx, r, time.Now())
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			// The cookie is attached at first write, so rejections below
			// still re-issue the session.
			sw := &sessionWriter{ResponseWriter: w, engine: engine, sess: sess}

			stateChanging := frontdoor.StateChanging(r.Method)
			_, hasRules := engine.RuleSetFor(r.URL.Path)

			var fields map[string]string
			token := r.Header.Get(engine.CSRFHeaderName())
			if stateChanging || hasRules {
				var formToken string
				fields, formToken, err = parseFields(r, o.maxBodyBytes, engine.CSRFFormField())
				if err != nil {
					writeJSONError(sw, http.StatusBadRequest, "malformed request body")
					return
				}
				if token == "" {
					token = formToken
				}
			}

			csrfVerified := false
			if stateChanging && engine.CSRFProtectionEnabled() {
				if err := engine.VerifyCSRF(ctx, sess, token); err != nil {
					writeJSONError(sw, http.StatusForbidden, "forbidden")
					return
				}
				csrfVerified = true
			}

			if stateChanging && o.throttleKey != nil {
				if key := o.throttleKey(r, fields); key != "" {
					switch err := engine.ThrottleHit(ctx, key); {
					case errors.Is(err, frontdoor.ErrThrottled):
						writeJSONError(sw, http.StatusTooManyRequests, "too many attempts")
						return
					case err != nil:
						writeJSONError(sw, http.StatusServiceUnavailable, "service unavailable")
						return
					}
				}
			}

			if hasRules {
				fieldErrs, err := engine.ValidateFields(ctx, r.URL.Path, fields)
				if err != nil {
					writeJSONError(sw, http.StatusInternalServerError, "internal server error")
					return
				}
				if len(fieldErrs) > 0 {
					writeFieldErrors(sw, fieldErrs)
					return
				}
			}

			ctx = context.WithValue(ctx, sessionContextKey{}, sess)
			ctx = context.WithValue(ctx, csrfVerifiedContextKey{}, csrfVerified)
			if fields != nil {
				ctx = context.WithValue(ctx, fieldsContextKey{}, fields)
			}

			next.ServeHTTP(sw, r.WithContext(ctx))

			// Handlers that never wrote still get the rolling cookie.
			sw.emit()
		})
	}
}

// sessionWriter re-encodes the session into a Set-Cookie header just
// before the first byte of the response, advancing the rolling expiry
// window on every response that touched a session.
type sessionWriter struct {
	http.ResponseWriter
	engine  *frontdoor.Engine
	sess    *frontdoor.Session
	emitted bool
}

func (sw *sessionWriter) WriteHeader(code int) {
	sw.emit()
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.emit()
	return sw.ResponseWriter.Write(b)
}

// Flush forces the cookie out before the first flushed byte so streaming
// handlers keep the rolling-expiry behavior.
func (sw *sessionWriter) Flush() {
	sw.emit()
	if f, ok := sw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the connection over after attaching the cookie; once
// hijacked the session can no longer be re-issued on this response.
func (sw *sessionWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := sw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	sw.emit()
	return h.Hijack()
}

func (sw *sessionWriter) emit() {
	if sw.emitted {
		return
	}
	sw.emitted = true

	c, err := sw.engine.SaveSession(sw.sess, time.Now())
	if err != nil {
		log.Printf("frontdoor: session save failed: %v", err)
		return
	}
	http.SetCookie(sw.ResponseWriter, c)
}

// parseFields extracts the named fields of a request as strings and
// pulls the CSRF token out of the payload so it never reaches the
// validation or business layer.
func parseFields(r *http.Request, maxBody int64, csrfField string) (map[string]string, string, error) {
	fields := make(map[string]string)
	token := ""

	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBody)
	}

	if isJSONRequest(r) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, "", err
		}
		for k, v := range raw {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if k == csrfField {
				token = s
				continue
			}
			fields[k] = s
		}
		return fields, token, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, "", err
	}
	for k := range r.Form {
		if k == csrfField {
			token = r.Form.Get(k)
			continue
		}
		fields[k] = r.Form.Get(k)
	}
	r.Form.Del(csrfField)
	r.PostForm.Del(csrfField)

	return fields, token, nil
}

func isJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	for i := 0; i < len(ct); i++ {
		if ct[i] == ';' {
			ct = ct[:i]
			break
		}
	}
	return ct == "application/json"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeFieldErrors(w http.ResponseWriter, fieldErrs []frontdoor.FieldError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":  "validation failed",
		"fields": fieldErrs,
	})
}
