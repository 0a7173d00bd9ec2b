package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPLimiter(1, 2)
	now := time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := RateLimit(limiter, testLogger())(okHandler())

	request := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/social-feed", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:1002"))

	// Other clients have their own bucket
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1000"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1003"))
}

func TestRateLimit_IgnoresForwardedFor(t *testing.T) {
	limiter := NewIPLimiter(1, 1)
	handler := RateLimit(limiter, testLogger())(okHandler())

	for i, expected := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		req.Header.Set("X-Forwarded-For", "192.168.0."+string(rune('1'+i)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, expected, rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(NewIPLimiter(0, 0), testLogger())(okHandler())

	for range 100 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestIPLimiter_PrunesIdleClients(t *testing.T) {
	limiter := NewIPLimiter(1, 1)
	now := time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")
	assert.Equal(t, 2, limiter.size())

	now = now.Add(limiterIdleTTL)
	limiter.Allow("10.0.0.3")
	assert.Equal(t, 1, limiter.size())
}

func TestRecover(t *testing.T) {
	handler := chain(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}), Logger(testLogger()), Recover(testLogger()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/social-feed", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestLogger_CapturesStatus(t *testing.T) {
	lrw := &loggingResponseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

	lrw.WriteHeader(http.StatusTeapot)
	n, err := lrw.Write([]byte("short and stout"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, lrw.statusCode)
	assert.Equal(t, int64(n), lrw.bytesWritten)
}
