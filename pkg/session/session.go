// Package session provides cookie-carried HTTP sessions for PetHive.
//
// Session data lives in Redis keyed by a random ID carried in an HTTP-only
// cookie. When Redis is unreachable the payload is instead carried directly
// in an AES-GCM-encrypted companion cookie, so login and the demo experience
// keep working through a full infrastructure outage.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("user_id", 42)
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/pkg/cache"
	"github.com/pethive/pethive/pkg/crypt"
)

// ------------------- Options -------------------

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns the storefront defaults: a cookie named "session"
// with the configured TTL, Secure only in production.
func DefaultOptions() Options {
	return Options{
		CookieName: "session",
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.IsProduction(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	changed bool
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func redisKey(id string) string { return "pethive:session:" + id }

// dataCookieName is the companion cookie used when Redis is unavailable.
func (o Options) dataCookieName() string { return o.CookieName + "_data" }

// load fetches session data from Redis, falling back to the encrypted
// companion cookie when Redis has no record (or is down).
func load(r *http.Request, id string, opts Options) map[string]interface{} {
	var data map[string]interface{}
	if cache.Get(redisKey(id), &data) {
		return data
	}

	if cookie, err := r.Cookie(opts.dataCookieName()); err == nil {
		if err := crypt.DecryptJSON(cookie.Value, &data); err == nil && data != nil {
			return data
		}
	}

	return map[string]interface{}{}
}

// Set stores a value under key in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	s2, ok := v.(string)
	return s2, ok
}

// GetUint is a typed convenience getter for record IDs.
// JSON numbers unmarshal as float64, so both paths are handled.
func (s *Session) GetUint(key string) (uint, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return uint(n), true
	case int:
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

// GetJSON unmarshals a stored value into dest via a JSON round-trip.
// Used for structured values such as the demo identity.
func (s *Session) GetJSON(key string, dest interface{}) bool {
	v, ok := s.data[key]
	if !ok {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Invalidate destroys the session contents (logout).
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Save persists the session and writes the cookie(s) to the response.
// Redis is the primary store; when it is unavailable the JSON payload is
// encrypted into the companion cookie instead.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	maxAge := int(s.opts.TTL.Seconds())
	if len(s.data) == 0 {
		// Invalidated session: drop the server record and expire both cookies.
		_ = cache.Del(redisKey(s.id))
		maxAge = -1
	}

	s.writeCookie(w, s.opts.CookieName, s.id, maxAge)

	if len(s.data) == 0 {
		s.writeCookie(w, s.opts.dataCookieName(), "", -1)
		s.changed = false
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	if cache.Available() {
		if err := cache.Set(redisKey(s.id), json.RawMessage(raw), s.opts.TTL); err == nil {
			s.changed = false
			return nil
		}
	}

	// Redis down: carry the payload in the encrypted companion cookie.
	enc, err := crypt.EncryptBytes(raw)
	if err != nil {
		return fmt.Errorf("session: encrypt fallback: %w", err)
	}
	s.writeCookie(w, s.opts.dataCookieName(), enc, maxAge)

	s.changed = false
	return nil
}

func (s *Session) writeCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.opts.Path,
		MaxAge:   maxAge,
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

// ------------------- Middleware -------------------

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				sess.data = load(r, sess.id, opts)
			} else {
				id, _ := newID()
				sess.id = id
				sess.data = map[string]interface{}{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context.
// Returns an empty (unsaved) session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, opts: DefaultOptions()}
}
