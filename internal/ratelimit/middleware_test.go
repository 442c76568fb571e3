package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck/internal/ratelimit"
)

// countingLimiter is an in-memory stand-in for the Redis limiter.
type countingLimiter struct {
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.counts[key]++
	count := l.counts[key]
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &ratelimit.Result{
		Allowed:   count <= limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(window),
		Limit:     limit,
	}, nil
}

func callThrough(mw echo.MiddlewareFunc, ip string) *httptest.ResponseRecorder {
	e := echo.New()
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestMiddleware_BlocksOverLimit(t *testing.T) {
	limiter := &countingLimiter{counts: map[string]int{}}
	mw := ratelimit.Middleware(limiter, 30, time.Minute)

	for i := 0; i < 30; i++ {
		rec := callThrough(mw, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := callThrough(mw, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_SeparateClients(t *testing.T) {
	limiter := &countingLimiter{counts: map[string]int{}}
	mw := ratelimit.Middleware(limiter, 1, time.Minute)

	assert.Equal(t, http.StatusOK, callThrough(mw, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, callThrough(mw, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, callThrough(mw, "10.0.0.2").Code)
}

func TestMiddleware_SetsHeaders(t *testing.T) {
	limiter := &countingLimiter{counts: map[string]int{}}
	mw := ratelimit.Middleware(limiter, 30, time.Minute)

	rec := callThrough(mw, "10.0.0.3")
	assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestMiddleware_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	mw := ratelimit.Middleware(limiter, 30, time.Minute)

	rec := callThrough(mw, "10.0.0.4")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewLimiter(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, "rl:")
	assert.NotNil(t, limiter)
}
