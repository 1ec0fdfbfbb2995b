// Package httpclient is the HTTP JSON transport to the sync server.
//
// Failures are mapped onto the shared error taxonomy: anything that prevents
// a usable response wraps common.ErrNetwork (retried on the next scheduled
// sync), a 401 wraps common.ErrInvalidToken (surfaced so the user can
// re-authenticate, never auto-retried).
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

// Remote is the transport surface the sync client consumes.
type Remote interface {
	Register(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	Push(ctx context.Context, token string, req syncwire.PushRequest) (*syncwire.PushResponse, error)
	Pull(ctx context.Context, token string, req syncwire.PullRequest) (*syncwire.PullResponse, error)
	Ping(ctx context.Context) error
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp syncwire.TokenResponse
	err := c.post(ctx, "/api/user/register", "", syncwire.RegisterRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	var resp syncwire.TokenResponse
	err := c.post(ctx, "/api/user/login", "", syncwire.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) Push(ctx context.Context, token string, req syncwire.PushRequest) (*syncwire.PushResponse, error) {
	var resp syncwire.PushResponse
	if err := c.post(ctx, "/api/sync/push", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Pull(ctx context.Context, token string, req syncwire.PullRequest) (*syncwire.PullResponse, error) {
	var resp syncwire.PullResponse
	if err := c.post(ctx, "/api/sync/pull", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping returned %s", common.ErrNetwork, resp.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrInvalidToken, path)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s: %s", path, apiError(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e syncwire.ErrorResponse
	if err := json.Unmarshal(b, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return resp.Status
}
