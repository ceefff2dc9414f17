package handlers

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	maxAttempts    = 5
	blockDuration  = 15 * time.Minute
	windowDuration = 15 * time.Minute
	maxTracked     = 10000
)

// client tracks one address's failures within the current window.
type client struct {
	failures     int
	windowStart  time.Time
	blockedUntil time.Time
}

// rateLimiter blocks an address for blockDuration once it has failed
// maxAttempts times within windowDuration.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

func (l *rateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok || c.blockedUntil.IsZero() {
		return true
	}
	if l.now().Before(c.blockedUntil) {
		return false
	}
	delete(l.clients, ip)
	return true
}

func (l *rateLimiter) RecordFailure(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[ip]
	if !ok || now.Sub(c.windowStart) > windowDuration {
		if len(l.clients) >= maxTracked {
			l.prune(now)
		}
		c = &client{windowStart: now}
		l.clients[ip] = c
	}
	c.failures++
	if c.failures >= maxAttempts {
		c.blockedUntil = now.Add(blockDuration)
	}
}

// Reset forgets an address after a successful attempt.
func (l *rateLimiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, ip)
}

// prune drops clients that are neither blocked nor inside their window.
// The caller holds mu.
func (l *rateLimiter) prune(now time.Time) {
	for ip, c := range l.clients {
		if now.After(c.blockedUntil) && now.Sub(c.windowStart) > windowDuration {
			delete(l.clients, ip)
		}
	}
}

func getClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
