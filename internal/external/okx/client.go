package okx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/realbalance/pkg/config"
	"github.com/wonny/realbalance/pkg/httputil"
	"github.com/wonny/realbalance/pkg/logger"
)

// Client handles communication with the OKX v5 REST API.
// Credentials live in the injected config; no package state.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.OKXConfig

	// now is stubbed in tests to pin the signing timestamp
	now func() time.Time
}

// NewClient creates a new OKX API client
func NewClient(cfg config.OKXConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
		now:        time.Now,
	}
}

// APIError is an exchange-level failure: HTTP succeeded but the
// response envelope carries a non-zero code.
type APIError struct {
	Code string
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("okx API error: code=%s msg=%s", e.Code, e.Msg)
}

// apiResponse is the OKX v5 response envelope
type apiResponse struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// sign builds the OK-ACCESS-SIGN value:
// base64(HMAC-SHA256(secret, timestamp + method + requestPath + body)).
func (c *Client) sign(timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.SecretKey))
	mac.Write([]byte(timestamp + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// timestamp returns the signing timestamp: ISO-8601 UTC with
// millisecond precision, e.g. 2026-01-02T15:04:05.000Z.
func (c *Client) timestamp() string {
	return c.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// get makes a signed GET request and unmarshals the envelope data
// array into out.
func (c *Client) get(ctx context.Context, requestPath string, out interface{}) error {
	ts := c.timestamp()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+requestPath, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OK-ACCESS-KEY", c.cfg.APIKey)
	req.Header.Set("OK-ACCESS-SIGN", c.sign(ts, http.MethodGet, requestPath, ""))
	req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.cfg.Passphrase)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", requestPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error status %d: %s", resp.StatusCode, string(body))
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if envelope.Code != "0" {
		return &APIError{Code: envelope.Code, Msg: envelope.Msg}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}

// Helper functions

func parseFloatSafe(s string) float64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
