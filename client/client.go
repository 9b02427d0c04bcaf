package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/comanda-io/comanda/core"
)

// TokenSource yields the current bearer token. An empty token means no
// session is established.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a fixed-token TokenSource, mostly for tests.
type StaticToken string

func (s StaticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// Client wraps every outbound call to the backend.
//
// Failure discipline: read operations degrade to an empty collection and
// never bubble an error past this package; write operations return a
// core.ClientError carrying the best message that could be extracted from
// the response. Nothing is retried automatically — a failed write goes back
// to the user, who re-triggers the action.
type Client struct {
	// HTTPClient performs the requests. Replace it to add instrumentation
	// or fakes; the default carries only a timeout.
	HTTPClient *http.Client

	baseURL string
	tokens  TokenSource
	logger  core.Logger
}

// New creates a client for the API at baseURL. tokens supplies the bearer
// token for every call except login.
func New(baseURL string, tokens TokenSource, logger core.Logger) *Client {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// Authenticate posts credentials to the login endpoint. On any failure it
// returns an empty token and role: the caller treats the absence of a token
// as invalid credentials. This is the one call that sends no auth header.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (token string, role core.Role, err error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", "", fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Error("Login request failed", map[string]interface{}{
			"operation": "auth_login",
			"error":     err.Error(),
		})
		return "", "", nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Login rejected", map[string]interface{}{
			"operation":   "auth_login",
			"status_code": resp.StatusCode,
		})
		return "", "", nil
	}

	var payload struct {
		Token string `json:"token"`
		Role  string `json:"rol"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("Login response unreadable", map[string]interface{}{
			"operation": "auth_login",
			"error":     err.Error(),
		})
		return "", "", nil
	}
	return payload.Token, core.Role(payload.Role), nil
}

// authHeaders builds the headers for an authenticated call.
func (c *Client) authHeaders(ctx context.Context) (http.Header, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving token: %w", err)
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

// requireToken fails fast when no token is available. Write paths call this
// before touching the network.
func (c *Client) requireToken(ctx context.Context, op string) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return core.NewClientError(op, "auth", err)
	}
	if token == "" {
		return core.NewClientError(op, "auth", core.ErrNotAuthenticated)
	}
	return nil
}

// get performs an authenticated GET and returns the body on 2xx.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return nil, err
	}
	req.Header = headers

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s returned %d", core.ErrRequestFailed, path, resp.StatusCode)
	}
	return body, nil
}

// send performs an authenticated mutation and returns the raw response body.
// Non-success responses become a ClientError carrying the extracted message.
func (c *Client) send(ctx context.Context, op, method, path string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, core.NewClientError(op, "write", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, core.NewClientError(op, "write", err)
	}
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return nil, core.NewClientError(op, "auth", err)
	}
	req.Header = headers

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, core.NewClientError(op, "write", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewClientError(op, "write", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := extractMessage(resp.StatusCode, resp.Status, body)
		c.logger.Error("Write request failed", map[string]interface{}{
			"operation":   op,
			"method":      method,
			"path":        path,
			"status_code": resp.StatusCode,
			"message":     msg,
		})
		return nil, &core.ClientError{Op: op, Kind: "write", Message: msg, Err: core.ErrRequestFailed}
	}
	return body, nil
}

// extractMessage pulls the most human-readable failure message available:
// the JSON mensaje field, then the whole JSON object, then the plain text
// body, then a generic status line.
func extractMessage(statusCode int, status string, body []byte) string {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		if m, ok := obj["mensaje"].(string); ok && m != "" {
			return m
		}
		if len(obj) > 0 {
			if compact, err := json.Marshal(obj); err == nil {
				return string(compact)
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	if status != "" {
		return "Status " + status
	}
	return fmt.Sprintf("Status %d", statusCode)
}
