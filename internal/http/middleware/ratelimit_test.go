package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), rl.Middleware())
	r.GET("/api/v1/search", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	captureLogger(t)
	rl := NewRateLimiter(0.001, 2)
	r := limitedRouter(rl)

	for i := 0; i < 2; i++ {
		if w := hit(r, "/api/v1/search", "10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
	w := hit(r, "/api/v1/search", "10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "too_many_requests" || body["request_id"] == "" {
		t.Fatalf("body=%v", body)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}

	if w := hit(r, "/api/v1/search", "10.0.0.2"); w.Code != http.StatusOK {
		t.Fatalf("other client throttled: %d", w.Code)
	}
}

func TestRateLimiter_ExemptPathsAndDisabled(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0.001, 1, "/health"))
	for i := 0; i < 5; i++ {
		if w := hit(r, "/health", "10.0.0.9"); w.Code != http.StatusOK {
			t.Fatalf("exempt path throttled on %d", i)
		}
	}

	off := NewRateLimiter(0, 0)
	r = limitedRouter(off)
	for i := 0; i < 5; i++ {
		if w := hit(r, "/api/v1/search", "10.0.0.9"); w.Code != http.StatusOK {
			t.Fatalf("disabled limiter throttled on %d", i)
		}
	}
	if off.size() != 0 {
		t.Fatalf("disabled limiter kept %d buckets", off.size())
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(5, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	rl.allow("b")
	if rl.size() != 2 {
		t.Fatalf("size=%d", rl.size())
	}

	now = now.Add(idleBucketTTL + time.Second)
	rl.allow("c")
	if rl.size() != 1 {
		t.Fatalf("idle buckets not swept, size=%d", rl.size())
	}
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	if got := NewRateLimiter(0.1, 1).retryAfter(); got != 10 {
		t.Fatalf("retryAfter=%d", got)
	}
	if got := NewRateLimiter(50, 1).retryAfter(); got != 1 {
		t.Fatalf("retryAfter=%d", got)
	}
}
