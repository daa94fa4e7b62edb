package okx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/realbalance/pkg/config"
	"github.com/wonny/realbalance/pkg/httputil"
	"github.com/wonny/realbalance/pkg/logger"
)

const (
	testAPIKey     = "test-api-key"
	testSecretKey  = "test-secret-key"
	testPassphrase = "test-passphrase"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		Env:      "development",
		LogLevel: "error",
	}
	log := logger.NewWithWriter(io.Discard, "error")
	httpClient := httputil.New(cfg, log).DisableRetry()

	return NewClient(config.OKXConfig{
		APIKey:     testAPIKey,
		SecretKey:  testSecretKey,
		Passphrase: testPassphrase,
		BaseURL:    baseURL,
	}, httpClient, log)
}

// signFor recomputes the expected signature server-side
func signFor(timestamp, method, requestPath string) string {
	mac := hmac.New(sha256.New, []byte(testSecretKey))
	mac.Write([]byte(timestamp + method + requestPath))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestClient_SignedHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get("OK-ACCESS-KEY"))
		assert.Equal(t, testPassphrase, r.Header.Get("OK-ACCESS-PASSPHRASE"))

		ts := r.Header.Get("OK-ACCESS-TIMESTAMP")
		require.NotEmpty(t, ts)
		_, err := time.Parse("2006-01-02T15:04:05.000Z", ts)
		assert.NoError(t, err, "timestamp must be ISO-8601 UTC with millisecond precision")

		// The signature must cover timestamp + method + path incl. query
		want := signFor(ts, http.MethodGet, r.URL.RequestURI())
		assert.Equal(t, want, r.Header.Get("OK-ACCESS-SIGN"))

		w.Write([]byte(`{"code":"0","msg":"","data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetPositions(context.Background())
	require.NoError(t, err)
}

func TestClient_TimestampFormat(t *testing.T) {
	client := newTestClient(t, "http://unused")
	client.now = func() time.Time {
		return time.Date(2026, 5, 4, 1, 2, 3, 456e6, time.UTC)
	}

	assert.Equal(t, "2026-05-04T01:02:03.456Z", client.timestamp())
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"50111","msg":"Invalid OK-ACCESS-KEY","data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetAccountBalance(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "50111", apiErr.Code)
	assert.Equal(t, "Invalid OK-ACCESS-KEY", apiErr.Msg)
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetAccountBalance(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestGetAccountBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/account/balance", r.URL.Path)
		w.Write([]byte(`{"code":"0","msg":"","data":[{
			"totalEq":"1234.5",
			"details":[{"ccy":"USDT","upl":"34.5"},{"ccy":"BTC","upl":"-4.5"}]
		}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	balance, err := client.GetAccountBalance(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 1234.5, balance.TotalEquity, 1e-9)
	assert.InDelta(t, 30.0, balance.UnrealizedPnL, 1e-9, "upl summed across currency details")
	assert.InDelta(t, 1204.5, balance.Balance(), 1e-9)
}

func TestGetAccountBalance_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetAccountBalance(context.Background())
	assert.Error(t, err)
}

func TestGetPositions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/account/positions", r.URL.Path)
		assert.Equal(t, "SWAP", r.URL.Query().Get("instType"))
		w.Write([]byte(`{"code":"0","msg":"","data":[
			{"instId":"BTC-USDT-SWAP","posSide":"long","pos":"2","avgPx":"60000.5","last":"60100","upl":"19.9","lever":"10"},
			{"instId":"ETH-USDT-SWAP","posSide":"short","pos":"0","avgPx":"","last":"","upl":"","lever":"3"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	positions, err := client.GetPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, "BTC-USDT-SWAP", positions[0].InstID)
	assert.Equal(t, "long", positions[0].PosSide)
	assert.InDelta(t, 2.0, positions[0].Quantity, 1e-9)
	assert.InDelta(t, 60000.5, positions[0].AvgPrice, 1e-9)
	assert.InDelta(t, 60100.0, positions[0].LastPrice, 1e-9)
	assert.InDelta(t, 19.9, positions[0].UnrealizedPnL, 1e-9)
	assert.Equal(t, "10", positions[0].Leverage)

	// Empty numeric strings parse to zero; filtering is downstream
	assert.Zero(t, positions[1].Quantity)
}

func TestGetPendingAlgoOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/trade/orders-algo-pending", r.URL.Path)
		assert.Equal(t, "conditional", r.URL.Query().Get("ordType"))
		assert.Equal(t, "SWAP", r.URL.Query().Get("instType"))
		w.Write([]byte(`{"code":"0","msg":"","data":[
			{"algoId":"a1","instId":"BTC-USDT-SWAP","posSide":"long","ordType":"conditional","slTriggerPx":"58000","sz":"1","closeFraction":""},
			{"algoId":"a2","instId":"BTC-USDT-SWAP","posSide":"long","ordType":"conditional","slTriggerPx":"57000","sz":"","closeFraction":"1"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	orders, err := client.GetPendingAlgoOrders(context.Background(), OrdTypeConditional)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "a1", orders[0].AlgoID)
	assert.Equal(t, "58000", orders[0].SLTriggerPrice)
	assert.Equal(t, "1", orders[0].Size)
	assert.False(t, orders[0].FullClose())

	assert.True(t, orders[1].FullClose())
	assert.Empty(t, orders[1].Size)
}
