package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rhinostock/inventario-backend/internal/identity"
	"github.com/rhinostock/inventario-backend/pkg/config"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func (f *fakeLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestSearchRateLimitAllowsUnderLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	mw := SearchRateLimit(config.SearchLimiterConfig{Window: time.Minute, Limit: 2}, store, testLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/inventory/search?q=fw", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		resp := httptest.NewRecorder()
		mw(next).ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i+1, resp.Code)
		}
	}
}

func TestSearchRateLimitBlocksOverLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	mw := SearchRateLimit(config.SearchLimiterConfig{Window: time.Minute, Limit: 1}, store, testLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRequest(http.MethodGet, "/api/inventory/search?q=fw", nil)
	first.RemoteAddr = "10.0.0.1:5000"
	resp := httptest.NewRecorder()
	mw(next).ServeHTTP(resp, first)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", resp.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/inventory/search?q=fw", nil)
	second.RemoteAddr = "10.0.0.1:5000"
	resp = httptest.NewRecorder()
	mw(next).ServeHTTP(resp, second)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestSearchRateLimitKeysAuthenticatedByEmail(t *testing.T) {
	store := &fakeLimiterStore{}
	mw := SearchRateLimit(config.SearchLimiterConfig{Window: time.Minute, Limit: 5}, store, testLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/search?q=fw", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	req = req.WithContext(WithIdentity(req.Context(), identity.Identity{Email: "Alice@Rhino.MX", UserID: &userID}))

	resp := httptest.NewRecorder()
	mw(next).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if _, ok := store.counts["rl:search:alice@rhino.mx"]; !ok {
		t.Fatalf("expected email-keyed counter, got %v", store.counts)
	}
}

func TestSearchRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	mw := SearchRateLimit(config.SearchLimiterConfig{}, nil, testLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/search?q=fw", nil)
	mw(next).ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected handler invoked when limiter disabled")
	}
}
