package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a simple in-memory fixed-window limiter keyed by client IP.
// Good enough for a single-process deployment; a multi-node setup would need
// a shared store instead.
type RateLimiter struct {
	clients map[string]*window
	limit   int
	period  time.Duration
	mu      sync.Mutex
}

type window struct {
	expires time.Time
	count   int
}

// NewRateLimiter creates a limiter allowing limit requests per period for
// each client.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go rl.evictExpired()
	return rl
}

// Middleware rejects requests over the per-client budget with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()
	win, ok := rl.clients[client]
	if !ok || now.After(win.expires) {
		rl.clients[client] = &window{count: 1, expires: now.Add(rl.period)}
		return true
	}

	if win.count >= rl.limit {
		return false
	}
	win.count++
	return true
}

// evictExpired drops stale windows so the client map doesn't grow without
// bound.
func (rl *RateLimiter) evictExpired() {
	ticker := time.NewTicker(rl.period)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for client, win := range rl.clients {
			if now.After(win.expires) {
				delete(rl.clients, client)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP identifies the caller, preferring proxy headers over the socket
// address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
