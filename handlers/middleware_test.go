package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	dummyHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := SecurityHeadersMiddleware(dummyHandler)

	req := httptest.NewRequest("GET", "/api/v1/content", nil)
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	expectedHeaders := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Cache-Control":          "no-store",
	}
	for key, expectedValue := range expectedHeaders {
		if value := rr.Header().Get(key); value != expectedValue {
			t.Errorf("Header %s: expected %s, got %s", key, expectedValue, value)
		}
	}

	csp := rr.Header().Get("Content-Security-Policy")
	for _, directive := range []string{"default-src 'self'", "img-src 'self' data:", "frame-ancestors 'self'"} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing directive: %s. Got: %s", directive, csp)
		}
	}

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status OK, got %v", rr.Code)
	}
}

func TestCaptchaImagesAreCacheable(t *testing.T) {
	handler := SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png"))
	}))

	req := httptest.NewRequest("GET", "/captcha/abc.png", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if cc := w.Header().Get("Cache-Control"); strings.Contains(cc, "no-store") {
		t.Errorf("Expected no Cache-Control: no-store for captcha images, got %q", cc)
	}
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	dummyHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	middleware := CORSMiddleware(dummyHandler)

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	if val := rr.Header().Get("Access-Control-Allow-Origin"); val != "http://example.com" {
		t.Errorf("Expected Access-Control-Allow-Origin to be http://example.com, got %s", val)
	}
	if val := rr.Header().Get("Access-Control-Allow-Credentials"); val != "true" {
		t.Errorf("Expected credentials to be allowed, got %q", val)
	}
	if val := rr.Header().Get("Access-Control-Allow-Methods"); val != "POST, GET, OPTIONS, PUT, PATCH, DELETE" {
		t.Errorf("Unexpected Access-Control-Allow-Methods: %s", val)
	}
	if val := rr.Header().Get("Access-Control-Expose-Headers"); val != "X-CSRF-Token" {
		t.Errorf("Expected X-CSRF-Token to be exposed, got %q", val)
	}
	if called {
		t.Error("Preflight should not reach the wrapped handler")
	}
}

func TestCORSMiddlewareWithoutOrigin(t *testing.T) {
	middleware := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if val := rr.Header().Get("Access-Control-Allow-Origin"); val != "*" {
		t.Errorf("Expected wildcard origin, got %q", val)
	}
	if rr.Code != http.StatusTeapot {
		t.Errorf("Expected wrapped handler status, got %d", rr.Code)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	middleware := LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	middleware.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	entries := logs.FilterMessage("Request").All()
	if len(entries) != 1 {
		t.Fatalf("Expected one request log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/missing" {
		t.Errorf("Expected path /missing, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("Expected status 404, got %v", fields["status"])
	}
}
