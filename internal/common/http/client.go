// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"business-canvas/internal/models"
)

// Client calls the canvas API and decodes its response envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// Envelope sends body as JSON to path and decodes the response envelope.
// When out is non-nil the envelope's responseObject is decoded into it.
// The transport status is returned alongside; a non-2xx status is not an error.
func (c *Client) Envelope(ctx context.Context, method, path string, body, out interface{}) (*models.ApiResponse, int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var wire struct {
		models.ApiResponse
		ResponseObject json.RawMessage `json:"responseObject"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode envelope: %w", err)
	}

	envelope := wire.ApiResponse
	envelope.ResponseObject = nil
	if out != nil && len(wire.ResponseObject) > 0 && string(wire.ResponseObject) != "null" {
		if err := json.Unmarshal(wire.ResponseObject, out); err != nil {
			return &envelope, resp.StatusCode, fmt.Errorf("decode responseObject: %w", err)
		}
		envelope.ResponseObject = out
	}
	return &envelope, resp.StatusCode, nil
}
