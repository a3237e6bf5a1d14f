package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/padraicb/go-timesheet-sync/internal/config"
)

// Client issues resource queries against a workforce-management install.
type Client struct {
	baseURL    string
	authScheme string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the configured install. The endpoint is
// derived from the install and geo identifiers unless BaseURL overrides it.
func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.%s.workforcehub.com", cfg.Install, cfg.Geo)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authScheme: cfg.AuthScheme,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Query POSTs a resource query and returns the raw response body. A non-2xx
// status yields a *RemoteError, a failed call a *TransportError; the client
// never panics past its boundary.
func (c *Client) Query(ctx context.Context, resource string, q Query) ([]byte, error) {
	payload, err := sonic.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query for %s: %w", resource, err)
	}

	url := fmt.Sprintf("%s/api/v1/resource/%s/QUERY", c.baseURL, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", resource, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("%s %s", c.authScheme, c.token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Resource: resource, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{Resource: resource, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
