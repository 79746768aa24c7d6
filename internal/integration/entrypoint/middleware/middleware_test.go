package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/adapter/adaptertest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	engine := gin.New()
	engine.POST("/sessions", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	post := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		engine.ServeHTTP(rec, req)
		return rec.Code
	}

	expected := []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}
	for i, code := range expected {
		if got := post(); got != code {
			t.Errorf("request %d: expected %d, got %d", i+1, code, got)
		}
	}

	now = now.Add(time.Minute)
	if got := post(); got != http.StatusCreated {
		t.Errorf("expected a new window to allow the request, got %d", got)
	}

	now = now.Add(2 * time.Minute)
	limiter.cleanup()
	if len(limiter.windows) != 0 {
		t.Errorf("expected expired windows removed, got %d", len(limiter.windows))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, time.Minute)
	limiter.Run(context.Background()) // returns immediately when disabled

	engine := gin.New()
	engine.POST("/sessions", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected %d, got %d", http.StatusCreated, rec.Code)
		}
	}
}

func TestSessionMiddleware(t *testing.T) {
	store := adaptertest.NewSessionStore()
	sess, _ := store.Create(context.Background())
	m := NewSessionMiddleware(store)

	engine := gin.New()
	handler := func(c *gin.Context) {
		if s, ok := GetSessionFromContext(c); ok {
			c.String(http.StatusOK, s.ID)
			return
		}
		c.String(http.StatusOK, "")
	}
	engine.GET("/required", m.Require(), handler)
	engine.GET("/optional", m.Optional(), handler)

	tests := []struct {
		name     string
		path     string
		header   string
		expected int
		body     string
	}{
		{name: "required without header", path: "/required", expected: http.StatusUnauthorized},
		{name: "required with unknown session", path: "/required", header: "missing", expected: http.StatusUnauthorized},
		{name: "required with session", path: "/required", header: sess.ID, expected: http.StatusOK, body: sess.ID},
		{name: "optional without header", path: "/optional", expected: http.StatusOK},
		{name: "optional with unknown session", path: "/optional", header: "missing", expected: http.StatusOK},
		{name: "optional with session", path: "/optional", header: sess.ID, expected: http.StatusOK, body: sess.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, rec.Code)
			}
			if tt.expected == http.StatusOK && rec.Body.String() != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, rec.Body.String())
			}
		})
	}
}
