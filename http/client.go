// Package http provides the HTTP transport for talking to the remote
// downloader service.
//
// The client is deliberately plain: no retries, no backoff, no
// fail-fast circuitry. The session layer's polling loop is the only
// retry primitive in the system, and a transport failure is surfaced
// to it immediately.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds transport configuration for the service client.
type Config struct {
	// BaseURL is the root of the remote service, e.g. "http://localhost:5000"
	BaseURL string

	// Timeout for individual HTTP requests
	Timeout time.Duration

	// UserAgent for HTTP requests
	UserAgent string

	// Transport configures connection pooling
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection may remain open.
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 enables HTTP/2 for servers that support it.
	ForceAttemptHTTP2 bool
}

// DefaultConfig returns sensible defaults for the transport.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://localhost:5000",
		Timeout:   30 * time.Second,
		UserAgent: "ytgrab/1.0",
		Transport: TransportConfig{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// Client is a thin wrapper over net/http scoped to one service base URL.
type Client struct {
	base   *http.Client
	config *Config
}

// Response is a fully read HTTP response. The body is returned together
// with the status code because the service ships JSON error envelopes
// on 4xx/5xx responses; interpretation belongs to the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// New creates a client with the given configuration. A nil cfg uses
// defaults.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
	}

	return &Client{
		base: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// GetJSON performs a GET request against a service path.
func (c *Client) GetJSON(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// PostJSON marshals in and POSTs it against a service path.
func (c *Client) PostJSON(ctx context.Context, path string, in any) (*Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
}

// PostMultipart POSTs a single file under the given form field name.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf)
}

// Stream performs a GET request and hands back the raw body for the
// caller to consume, along with the declared content length (-1 when
// unknown). Used for artifact retrieval. Non-2xx responses produce an
// *HTTPError.
func (c *Client) Stream(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, 0, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	return resp.Body, resp.ContentLength, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    req.URL.String(),
	}).Debug("service request")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"url":    req.URL.String(),
		"status": resp.StatusCode,
	}).Debug("service response")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// resolve joins a service path to the base URL. Absolute URLs pass
// through untouched so artifact links returned by the service work
// whether they are relative or absolute.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
