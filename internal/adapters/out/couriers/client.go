package couriers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courierhub/internal/pkg/errs"
)

const defaultRequestTimeout = 10 * time.Second

// Client is a thin wrapper over http.Client shared by all provider
// adapters. It translates transport failures, deadline hits and non-2xx
// responses into the provider error taxonomy so adapters only deal with
// payload mapping.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client with the given per-request timeout.
// A non-positive timeout falls back to the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DoJSON performs an HTTP request with an optional JSON body and decodes a
// JSON response into out. A nil body sends no payload; a nil out discards
// the response body.
func (c *Client) DoJSON(ctx context.Context, provider, method, rawURL string,
	headers map[string]string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.NewProviderAPIError(provider, 0, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return errs.NewProviderAPIError(provider, 0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(provider, req, out)
}

// DoForm performs a POST with a form-encoded body and decodes a JSON
// response into out. Some couriers still run form-based APIs.
func (c *Client) DoForm(ctx context.Context, provider, rawURL string,
	headers map[string]string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return errs.NewProviderAPIError(provider, 0, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(provider, req, out)
}

func (c *Client) do(provider string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(req.Context(), err) {
			return errs.NewProviderTimeoutError(provider)
		}
		return errs.NewProviderAPIError(provider, 0, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.NewProviderAPIError(provider, 0, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewProviderAPIError(provider, resp.StatusCode,
			fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, truncate(payload)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errs.NewProviderAPIError(provider, resp.StatusCode,
			fmt.Errorf("decode response: %w", err))
	}

	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error

	return errors.As(err, &urlErr) && urlErr.Timeout()
}

func truncate(payload []byte) string {
	const max = 256
	if len(payload) > max {
		return string(payload[:max]) + "..."
	}

	return string(payload)
}
