package handlers

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestRateLimiterBlocksAfterMaxAttempts(t *testing.T) {
	limiter := newRateLimiter()
	const ip = "127.0.0.1"

	for i := 1; i <= maxAttempts; i++ {
		if !limiter.Allow(ip) {
			t.Fatalf("Blocked before failure %d", i)
		}
		limiter.RecordFailure(ip)
	}
	if limiter.Allow(ip) {
		t.Errorf("Expected %s to be blocked after %d failures", ip, maxAttempts)
	}
	if !limiter.Allow("10.0.0.2") {
		t.Error("Other addresses must not be blocked")
	}

	limiter.Reset(ip)
	if !limiter.Allow(ip) {
		t.Error("Expected address to be allowed after reset")
	}
}

func TestRateLimiterBlockExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter()
	limiter.now = func() time.Time { return now }

	for i := 0; i < maxAttempts; i++ {
		limiter.RecordFailure("1.2.3.4")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("Expected IP to be blocked")
	}

	now = now.Add(blockDuration + time.Second)
	if !limiter.Allow("1.2.3.4") {
		t.Error("Expected block to expire")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter()
	limiter.now = func() time.Time { return now }

	for i := 0; i < maxAttempts-1; i++ {
		limiter.RecordFailure("1.2.3.4")
	}
	now = now.Add(windowDuration + time.Second)
	limiter.RecordFailure("1.2.3.4")

	if !limiter.Allow("1.2.3.4") {
		t.Error("Failures outside the window should not count")
	}
}

func TestRateLimiterPrunesStaleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter()
	limiter.now = func() time.Time { return now }

	limiter.RecordFailure("stale")
	now = now.Add(10 * time.Minute)
	for i := 0; i < maxAttempts; i++ {
		limiter.RecordFailure("blocked")
	}
	now = now.Add(windowDuration - 10*time.Minute + time.Second)
	limiter.prune(now)

	if _, ok := limiter.clients["stale"]; ok {
		t.Error("Expected stale client to be pruned")
	}
	if _, ok := limiter.clients["blocked"]; !ok {
		t.Error("Blocked client must survive pruning until its block ends")
	}
}

func TestRateLimiterParallel(t *testing.T) {
	limiter := newRateLimiter()
	ip := "10.0.0.1"

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.RecordFailure(ip)
		}()
	}
	wg.Wait()

	if limiter.Allow(ip) {
		t.Errorf("Expected IP to be blocked after concurrent failures")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:5555"
	if got := getClientIP(r); got != "192.0.2.7" {
		t.Errorf("Expected 192.0.2.7, got %s", got)
	}
	r.RemoteAddr = "not-a-hostport"
	if got := getClientIP(r); got != "not-a-hostport" {
		t.Errorf("Expected raw RemoteAddr, got %s", got)
	}
}
