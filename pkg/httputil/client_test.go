package httputil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wonny/realbalance/pkg/config"
	"github.com/wonny/realbalance/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error")
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "error"}
	client := New(cfg, testLogger())

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.httpClient == nil {
		t.Error("Expected http.Client to be initialized")
	}
	if client.retryConfig.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries=3, got %d", client.retryConfig.MaxRetries)
	}
	if !client.retryConfig.Enabled {
		t.Error("Expected retry to be enabled by default")
	}
}

func TestNewWithTimeout(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "error"}

	timeout := 5 * time.Second
	client := NewWithTimeout(cfg, testLogger(), timeout)

	if client.httpClient.Timeout != timeout {
		t.Errorf("Expected timeout=%v, got %v", timeout, client.httpClient.Timeout)
	}
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{Env: "development", LogLevel: "error"}
	client := New(cfg, testLogger()).WithRetry(3, time.Millisecond)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 after retries, got %d", resp.StatusCode)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestGet_NoRetryWhenDisabled(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{Env: "development", LogLevel: "error"}
	client := New(cfg, testLogger()).DisableRetry()

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if got := attempts.Load(); got != 1 {
		t.Errorf("Expected 1 attempt, got %d", got)
	}
}

func TestDo_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("OK-ACCESS-KEY") != "abc" {
			t.Errorf("Expected custom header to pass through, got %q", r.Header.Get("OK-ACCESS-KEY"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{Env: "development", LogLevel: "error"}
	client := New(cfg, testLogger()).DisableRetry()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("OK-ACCESS-KEY", "abc")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() failed: %v", err)
	}
	resp.Body.Close()
}

func TestWithRateLimit(t *testing.T) {
	cfg := &config.Config{Env: "development", LogLevel: "error"}
	client := New(cfg, testLogger()).WithRateLimit(2)

	if client.limiter == nil {
		t.Fatal("Expected limiter to be set")
	}
	if client.limiter.Limit() != 2 {
		t.Errorf("Expected limit=2, got %v", client.limiter.Limit())
	}
}

func TestWithRateLimit_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{Env: "development", LogLevel: "error"}
	// Tiny limit so the second request has to wait
	client := New(cfg, testLogger()).DisableRetry().WithRateLimit(0.001)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Get(ctx, server.URL); err == nil {
		t.Error("Expected rate limit wait to fail on cancelled context")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		statusCode int
		want       bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		if got := IsRetryableError(tt.statusCode); got != tt.want {
			t.Errorf("IsRetryableError(%d) = %v, want %v", tt.statusCode, got, tt.want)
		}
	}
}
