package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitAllowsWithinBudgetThenRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	current := time.Unix(1000, 0)
	limiter := NewRateLimiter(func() time.Time { return current })

	router := gin.New()
	router.Use(RateLimit(RateLimitConfig{
		Rules: map[string]RateLimitRule{
			"SUMMARIZE": {Rate: 1, Burst: 2},
		},
		GroupFor: func(*gin.Context) string { return "SUMMARIZE" },
		Limiter:  limiter,
	}))
	router.POST("/summaries", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/summaries", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}

	// Refill one token after a second.
	current = current.Add(time.Second)
	if code := do(); code != http.StatusOK {
		t.Fatalf("after refill: expected 200, got %d", code)
	}
}

func TestRateLimitSkipsUnknownGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(RateLimitConfig{
		Rules:    map[string]RateLimitRule{},
		GroupFor: func(*gin.Context) string { return "NOPE" },
	}))
	router.GET("/summaries", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}
}
