package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// The site has exactly one credentialed endpoint, POST /api/login, and a
// plaintext credential check behind it, so login attempts are throttled
// per client address before the handler runs. Attempts are counted whether
// or not they succeed.
const (
	loginMaxAttempts    = 5
	loginWindowDuration = time.Minute
	loginCleanupPeriod  = 5 * time.Minute
)

type attemptWindow struct {
	count       int
	windowStart time.Time
}

type LoginRateLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attemptWindow
	lastCleanup time.Time
}

func NewLoginRateLimiter() *LoginRateLimiter {
	return &LoginRateLimiter{
		attempts:    make(map[string]*attemptWindow),
		lastCleanup: time.Now(),
	}
}

// clientIP normalizes the requester address used as the throttle key. The
// first X-Forwarded-For hop wins when a proxy fronts the site; otherwise
// the ephemeral port is stripped from RemoteAddr so repeat connections
// from one host land in one bucket.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			forwarded = forwarded[:i]
		}
		return strings.TrimSpace(forwarded)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// dropStale removes windows that can no longer be counting. Called with the
// lock held, at most once per cleanup period.
func (l *LoginRateLimiter) dropStale() {
	now := time.Now()
	if now.Sub(l.lastCleanup) < loginCleanupPeriod {
		return
	}
	l.lastCleanup = now

	for key, window := range l.attempts {
		if now.Sub(window.windowStart) > loginWindowDuration {
			delete(l.attempts, key)
		}
	}
}

func (l *LoginRateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dropStale()

	now := time.Now()
	window, exists := l.attempts[key]

	if !exists || now.Sub(window.windowStart) > loginWindowDuration {
		l.attempts[key] = &attemptWindow{count: 1, windowStart: now}
		return true
	}

	if window.count >= loginMaxAttempts {
		return false
	}

	window.count++
	return true
}

func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
