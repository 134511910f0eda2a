package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	serve := func(m *SecurityHeadersMiddleware) http.Header {
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		return rec.Header()
	}

	t.Run("sets baseline headers", func(t *testing.T) {
		h := serve(NewSecurityHeadersMiddleware(false, ""))
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
		assert.NotEmpty(t, h.Get("Content-Security-Policy"))
		assert.Empty(t, h.Get("Strict-Transport-Security"))
	})

	t.Run("adds HSTS in production", func(t *testing.T) {
		h := serve(NewSecurityHeadersMiddleware(true, ""))
		assert.Contains(t, h.Get("Strict-Transport-Security"), "max-age=31536000")
	})

	t.Run("allows images from the upload bucket", func(t *testing.T) {
		h := serve(NewSecurityHeadersMiddleware(false, "https://cdn.example.com/site-uploads"))
		csp := h.Get("Content-Security-Policy")
		assert.Contains(t, csp, "img-src 'self' data: https://cdn.example.com/site-uploads")
	})

	t.Run("keeps images same-origin without a bucket", func(t *testing.T) {
		h := serve(NewSecurityHeadersMiddleware(false, ""))
		assert.Contains(t, h.Get("Content-Security-Policy"), "img-src 'self' data:;")
	})
}
