// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withClaims(c *AccessTokenClaims, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), c)))
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

func TestRequirePaid(t *testing.T) {
	tests := []struct {
		name   string
		claims *AccessTokenClaims
		want   int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"unpaid", &AccessTokenClaims{UserID: "u"}, http.StatusPaymentRequired},
		{"paid", &AccessTokenClaims{UserID: "u", HasPaid: true}, http.StatusNoContent},
		{"admin", &AccessTokenClaims{UserID: "u", IsAdmin: true}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h http.Handler = RequirePaid(noContent)
			if tt.claims != nil {
				h = withClaims(tt.claims, h)
			}
			assert.Equal(t, tt.want, serve(h, get()).Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	h := withClaims(&AccessTokenClaims{UserID: "u", HasPaid: true}, RequireAdmin(noContent))
	assert.Equal(t, http.StatusForbidden, serve(h, get()).Code)

	h = withClaims(&AccessTokenClaims{UserID: "u", IsAdmin: true}, RequireAdmin(noContent))
	assert.Equal(t, http.StatusNoContent, serve(h, get()).Code)
}

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(context.Context, string) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func TestAuthenticator(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	auth := Authenticator(stubVerifier{claims: &AccessTokenClaims{UserID: "u-42"}})

	assert.Equal(t, http.StatusUnauthorized, serve(auth(next), get()).Code)

	req := get()
	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, http.StatusNoContent, serve(auth(next), req).Code)
	assert.Equal(t, "u-42", seen)

	denied := Authenticator(stubVerifier{err: core.ErrTokenRevoked})
	req = get()
	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, serve(denied(next), req).Code)

	broken := Authenticator(stubVerifier{err: errors.New("bad signature")})
	assert.Equal(t, http.StatusUnauthorized, serve(broken(next), req).Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := get()
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := serve(h, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)

	req = get()
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec = serve(h, req)
	require.NotEmpty(t, seen)
	assert.NotEqual(t, strings.Repeat("x", maxRequestIDLen+1), seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRateLimiterLocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{
		Limit:   PerMinute(1, 2),
		KeyFunc: KeyByRoute("webhooks"),
	})
	h := rl.Handler(noContent)

	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/webhooks", nil)
		r.RemoteAddr = "203.0.113.9:5555"
		return r
	}

	assert.Equal(t, http.StatusNoContent, serve(h, req()).Code)
	assert.Equal(t, http.StatusNoContent, serve(h, req()).Code)

	rec := serve(h, req())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestKeyByRoute(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.7:1234"
	assert.Equal(t, "webhooks:ratelimit:ip:198.51.100.7", KeyByRoute("webhooks")(r))

	r = r.WithContext(WithClaims(r.Context(), &AccessTokenClaims{UserID: "u-1"}))
	assert.Equal(t, "webhooks:ratelimit:user:u-1", KeyByRoute("webhooks")(r))
}
