package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAllow(t *testing.T) {
	l := New(1, 2)
	defer l.Stop()

	if !l.Allow("10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !l.Allow("10.0.0.1") {
		t.Error("second request should be within burst")
	}
	if l.Allow("10.0.0.1") {
		t.Error("third request should exceed burst")
	}

	// A different client gets its own bucket
	if !l.Allow("10.0.0.2") {
		t.Error("other client should be unaffected")
	}
}

func TestMiddleware(t *testing.T) {
	l := New(1, 1)
	defer l.Stop()

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "192.0.2.1:34567"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}
