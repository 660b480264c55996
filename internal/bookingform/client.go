package bookingform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"showroom_backend/internal/booking/transport"
	"showroom_backend/platform/httpkit"
)

const (
	sendEmailPath    = "/api/send-email"
	maxResponseBytes = 64 << 10
)

// Submitter posts one booking to the dispatch service.
type Submitter interface {
	Submit(ctx context.Context, req transport.BookingRequest) (httpkit.Result, error)
}

// Client is the HTTP Submitter.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL, e.g. "http://localhost:5000".
// No timeout is set; the caller's context bounds each submit.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Submit sends exactly one POST. A {success:false} answer is returned as a
// result, not an error; errors mean the request failed or the answer was not
// a JSON result.
func (c *Client) Submit(ctx context.Context, req transport.BookingRequest) (httpkit.Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return httpkit.Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendEmailPath, bytes.NewReader(body))
	if err != nil {
		return httpkit.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return httpkit.Result{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return httpkit.Result{}, err
	}

	var result httpkit.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return httpkit.Result{}, fmt.Errorf("send-email: status %d: unreadable response: %w", resp.StatusCode, err)
	}
	return result, nil
}
