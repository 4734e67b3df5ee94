package handler

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SecurityHeaders sets the response headers of a JSON-only API. Responses
// under /api/ carry account data and are never cached.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h.Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}

const (
	attemptWindow = time.Minute
	sweepInterval = 5 * time.Minute
)

// AuthLimiter throttles credential attempts per client IP. Each guarded
// action (sign in, sign up) has its own budget, so a burst of failed sign-ins
// does not block account creation from the same address.
type AuthLimiter struct {
	limit          int
	trustedProxies int
	now            func() time.Time
	onThrottle     func(action string)

	mu        sync.Mutex
	attempts  map[attemptKey][]time.Time
	lastSweep time.Time
}

type attemptKey struct {
	action string
	ip     string
}

// NewAuthLimiter allows limit attempts per action and IP in any one-minute
// window. A non-positive limit falls back to 20. onThrottle, when non-nil,
// is called for every rejected attempt.
func NewAuthLimiter(limit int, onThrottle func(action string)) *AuthLimiter {
	if limit <= 0 {
		limit = 20
	}
	return &AuthLimiter{
		limit:          limit,
		trustedProxies: 1,
		now:            time.Now,
		onThrottle:     onThrottle,
		attempts:       make(map[attemptKey][]time.Time),
	}
}

// Guard wraps the handler of one credential action.
func (l *AuthLimiter) Guard(action string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, l.trustedProxies)
		wait, ok := l.admit(attemptKey{action: action, ip: ip})
		if !ok {
			secs := retrySeconds(wait)
			slog.Warn("credential attempts throttled", "action", action, "ip", ip, "retry_after", secs)
			if l.onThrottle != nil {
				l.onThrottle(action)
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			writeError(w, http.StatusTooManyRequests, "rate_limited",
				fmt.Sprintf("too many %s attempts, retry in %d seconds", action, secs))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// admit records an attempt for key, or reports how long until the oldest
// attempt in the window expires.
func (l *AuthLimiter) admit(key attemptKey) (time.Duration, bool) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	recent := inWindow(l.attempts[key], now)
	if len(recent) >= l.limit {
		l.attempts[key] = recent
		return recent[0].Add(attemptWindow).Sub(now), false
	}
	l.attempts[key] = append(recent, now)
	return 0, true
}

// sweep drops keys with no attempts left in the window. Callers hold mu.
func (l *AuthLimiter) sweep(now time.Time) {
	for key, times := range l.attempts {
		if len(inWindow(times, now)) == 0 {
			delete(l.attempts, key)
		}
	}
	l.lastSweep = now
}

func inWindow(times []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-attemptWindow)
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}

func retrySeconds(d time.Duration) int {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		return 1
	}
	return secs
}

// clientIP returns the address the trusted proxies saw. With a proxy in
// front, the real client is the entry the outermost trusted proxy appended
// to X-Forwarded-For; entries left of it are client-controlled.
func clientIP(r *http.Request, trustedProxies int) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && trustedProxies > 0 {
		parts := strings.Split(xff, ",")
		if idx := len(parts) - trustedProxies; idx >= 0 {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
