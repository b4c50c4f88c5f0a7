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

	"github.com/cenkalti/backoff/v4"

	"github.com/sajjad-MoBe/slotstore/internal/deployment"
)

// Client represents a client for a slotstore deployment
type Client struct {
	baseURL     string
	routes      deployment.Routes
	httpClient  *http.Client
	retryConfig RetryConfig
}

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxRetries uint64
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		RetryDelay: 100 * time.Millisecond,
		Timeout:    5 * time.Second,
	}
}

// StatusError is returned when the server answers with an error status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a client for the deployment of the given kind served at
// baseURL
func NewClient(baseURL string, kind deployment.Kind, retryConfig RetryConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  deployment.RoutesFor(kind),
		httpClient: &http.Client{
			Timeout: retryConfig.Timeout,
		},
		retryConfig: retryConfig,
	}
}

// Save stores text and returns the server's confirmation message
func (c *Client) Save(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{c.routes.Field: text})
	if err != nil {
		return "", err
	}

	var response struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, c.routes.SavePath, body, &response); err != nil {
		return "", err
	}
	return response.Message, nil
}

// Read returns the stored value, or the deployment's sentinel if nothing is
// stored
func (c *Client) Read(ctx context.Context) (string, error) {
	var response map[string]string
	if err := c.do(ctx, http.MethodGet, c.routes.ReadPath, nil, &response); err != nil {
		return "", err
	}
	value, ok := response[c.routes.ReadField]
	if !ok {
		return "", fmt.Errorf("response missing field %q", c.routes.ReadField)
	}
	return value, nil
}

// do sends a request, retrying transport errors and 5xx responses
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var b backoff.BackOff = backoff.NewConstantBackOff(c.retryConfig.RetryDelay)
	b = backoff.WithContext(backoff.WithMaxRetries(b, c.retryConfig.MaxRetries), ctx)

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			statusErr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
			if resp.StatusCode >= 500 {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	return backoff.Retry(operation, b)
}
