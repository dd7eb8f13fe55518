package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2, nil)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.Header.Set("X-User-Id", "1")
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	req.Header.Set("X-User-Id", "1")
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.Code)
	}

	// A different caller has its own budget.
	resp = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/meetings", nil)
	req.Header.Set("X-User-Id", "2")
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for second caller, got %d", resp.Code)
	}
}

func TestCleanupResetsOversizedMap(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	for i := 0; i < 10001; i++ {
		rl.getLimiter(string(rune(i)))
	}
	rl.Cleanup()
	rl.mu.Lock()
	size := len(rl.limiters)
	rl.mu.Unlock()
	if size != 0 {
		t.Fatalf("expected limiter map reset, got %d entries", size)
	}
}
