// Package gateway implements the API gateway's downstream plumbing: a thin
// HTTP client for the store services and the two-phase orchestrator built
// on top of it.
//
// The client deliberately does not treat non-2xx statuses as errors: the
// gateway's contract is to translate downstream statuses 1:1 to its own
// callers, so a downstream response of any status is a successful exchange
// from the client's point of view. Only transport failures (connection
// refused, timeout, cancelled context) surface as Go errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is the downstream status and raw body of one upstream exchange.
type Response struct {
	Status int
	Body   []byte
}

// Client issues requests against a single downstream base URL.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout means
// outbound calls never time out, which mirrors the source system; the
// request context still cancels in-flight calls on client disconnect.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Get issues a GET to path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Delete issues a DELETE to path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// PostJSON marshals body and POSTs it to path.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return c.PostRaw(ctx, path, b)
}

// PostRaw POSTs the payload to path verbatim as application/json. Used by
// the call orchestration, which must forward the caller's payload without
// reshaping it.
func (c *Client) PostRaw(ctx context.Context, path string, payload []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: read body: %w", req.Method, req.URL.Path, err)
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}
