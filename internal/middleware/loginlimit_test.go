package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter(t *testing.T) {
	t.Run("allows attempts under the limit", func(t *testing.T) {
		limiter := NewLoginRateLimiter()
		for i := 0; i < loginMaxAttempts; i++ {
			assert.True(t, limiter.allow("1.2.3.4"))
		}
	})

	t.Run("blocks attempts over the limit", func(t *testing.T) {
		limiter := NewLoginRateLimiter()
		for i := 0; i < loginMaxAttempts; i++ {
			limiter.allow("1.2.3.4")
		}
		assert.False(t, limiter.allow("1.2.3.4"))
	})

	t.Run("tracks addresses separately", func(t *testing.T) {
		limiter := NewLoginRateLimiter()
		for i := 0; i < loginMaxAttempts; i++ {
			limiter.allow("1.2.3.4")
		}
		assert.True(t, limiter.allow("5.6.7.8"))
	})
}

func TestClientIP(t *testing.T) {
	t.Run("strips the port from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/login", nil)
		req.RemoteAddr = "1.2.3.4:51830"
		assert.Equal(t, "1.2.3.4", clientIP(req))
	})

	t.Run("passes a bare address through", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/login", nil)
		req.RemoteAddr = "1.2.3.4"
		assert.Equal(t, "1.2.3.4", clientIP(req))
	})

	t.Run("prefers the first forwarded hop", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:443"
		req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
		assert.Equal(t, "9.9.9.9", clientIP(req))
	})
}

func TestLoginRateLimiterHandler(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("returns 429 with Retry-After when blocked", func(t *testing.T) {
		limiter := NewLoginRateLimiter()
		handler := limiter.Handler(okHandler)

		for i := 0; i < loginMaxAttempts; i++ {
			req := httptest.NewRequest("POST", "/api/login", nil)
			req.RemoteAddr = "1.2.3.4:5000"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("POST", "/api/login", nil)
		req.RemoteAddr = "1.2.3.4:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("connections from one host share a bucket across ports", func(t *testing.T) {
		limiter := NewLoginRateLimiter()
		handler := limiter.Handler(okHandler)

		for i := 0; i < loginMaxAttempts; i++ {
			req := httptest.NewRequest("POST", "/api/login", nil)
			req.RemoteAddr = fmt.Sprintf("1.2.3.4:%d", 50000+i)
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		blocked := httptest.NewRequest("POST", "/api/login", nil)
		blocked.RemoteAddr = "1.2.3.4:60001"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, blocked)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("honors X-Forwarded-For", func(t *testing.T) {
		limiter := NewLoginRateLimiter()
		handler := limiter.Handler(okHandler)

		for i := 0; i < loginMaxAttempts; i++ {
			req := httptest.NewRequest("POST", "/api/login", nil)
			req.Header.Set("X-Forwarded-For", "9.9.9.9")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		blocked := httptest.NewRequest("POST", "/api/login", nil)
		blocked.Header.Set("X-Forwarded-For", "9.9.9.9")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, blocked)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		other := httptest.NewRequest("POST", "/api/login", nil)
		other.Header.Set("X-Forwarded-For", "8.8.8.8")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
