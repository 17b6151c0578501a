// Package api implements the remote downloader service's request and
// response contract: metadata lookup, job creation, status polling,
// history, artifact retrieval, and the cookies side channel.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ytgrab/http"
	"ytgrab/youtube"
)

// Fallback messages used when the service reports failure without a
// message of its own.
const (
	msgInfoFailed     = "failed to get video information"
	msgDownloadFailed = "Download failed"
)

// Client is a typed client for the remote service endpoints.
type Client struct {
	http *http.Client
}

// NewClient creates a service client over the given transport. A nil
// transport uses the default configuration.
func NewClient(transport *http.Client) *Client {
	if transport == nil {
		transport = http.New(nil)
	}
	return &Client{http: transport}
}

// FetchInfo resolves a source URL into descriptive metadata.
//
// The URL must be non-empty and pass youtube.IsValidSource; otherwise
// a *ValidationError is returned without any network call.
func (c *Client) FetchInfo(ctx context.Context, rawURL string) (*VideoInfo, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &ValidationError{Message: "please enter a YouTube URL"}
	}
	if !youtube.IsValidSource(rawURL) {
		return nil, &ValidationError{Message: "please enter a valid YouTube URL"}
	}

	resp, err := c.http.PostJSON(ctx, "/api/info", map[string]string{"url": rawURL})
	if err != nil {
		return nil, &NetworkError{Op: "fetch info", Err: err}
	}

	var r infoResponse
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return nil, &NetworkError{Op: "fetch info", Err: fmt.Errorf("decode response: %w", err)}
	}
	if !r.Success || r.Info == nil {
		return nil, &ServiceError{Message: orDefault(r.Error, msgInfoFailed)}
	}
	return r.Info, nil
}

// CreateJob submits a download request and returns the job id the
// service assigned.
func (c *Client) CreateJob(ctx context.Context, req JobRequest) (JobID, error) {
	resp, err := c.http.PostJSON(ctx, "/api/download", req)
	if err != nil {
		return "", &NetworkError{Op: "create job", Err: err}
	}

	var r createResponse
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return "", &NetworkError{Op: "create job", Err: fmt.Errorf("decode response: %w", err)}
	}
	if !r.Success || r.DownloadID == "" {
		return "", &ServiceError{Message: orDefault(r.Error, msgDownloadFailed)}
	}
	return r.DownloadID, nil
}

// JobStatus queries the status of a submitted job.
func (c *Client) JobStatus(ctx context.Context, id JobID) (*JobStatus, error) {
	resp, err := c.http.GetJSON(ctx, fmt.Sprintf("/api/download/%s/status", id))
	if err != nil {
		return nil, &NetworkError{Op: "job status", Err: err}
	}

	var st JobStatus
	if err := json.Unmarshal(resp.Body, &st); err != nil {
		return nil, &NetworkError{Op: "job status", Err: fmt.Errorf("decode response: %w", err)}
	}
	if st.Status == "" {
		// Unknown job id or malformed record; the service answers
		// these with a bare error envelope.
		var env envelope
		_ = json.Unmarshal(resp.Body, &env)
		return nil, &ServiceError{Message: orDefault(env.Error, "status check failed")}
	}
	return &st, nil
}

// History fetches the most recent download records.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	resp, err := c.http.GetJSON(ctx, "/api/history")
	if err != nil {
		return nil, &NetworkError{Op: "history", Err: err}
	}

	var r historyResponse
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return nil, &NetworkError{Op: "history", Err: fmt.Errorf("decode response: %w", err)}
	}
	if r.Error != "" {
		return nil, &ServiceError{Message: r.Error}
	}
	return r.Downloads, nil
}

// Health checks the service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.http.GetJSON(ctx, "/health")
	if err != nil {
		return nil, &NetworkError{Op: "health", Err: err}
	}

	var h HealthStatus
	if err := json.Unmarshal(resp.Body, &h); err != nil {
		return nil, &NetworkError{Op: "health", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &h, nil
}

// File streams a completed artifact from its download_url (relative or
// absolute). The caller owns the returned reader. Size is -1 when the
// service does not declare a content length.
func (c *Client) File(ctx context.Context, downloadURL string) (io.ReadCloser, int64, error) {
	if strings.TrimSpace(downloadURL) == "" {
		return nil, 0, &ValidationError{Message: "artifact location is empty"}
	}
	body, size, err := c.http.Stream(ctx, downloadURL)
	if err != nil {
		return nil, 0, &NetworkError{Op: "fetch file", Err: err}
	}
	return body, size, nil
}

// UploadCookies sends a cookies.txt blob as a multipart upload under
// the form field "cookies". Filename validation belongs to the
// cookies package; this is the raw wire call.
func (c *Client) UploadCookies(ctx context.Context, filename string, r io.Reader) error {
	resp, err := c.http.PostMultipart(ctx, "/api/upload-cookies", "cookies", filename, r)
	if err != nil {
		return &NetworkError{Op: "upload cookies", Err: err}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return &NetworkError{Op: "upload cookies", Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		return &ServiceError{Message: orDefault(env.Error, "failed to upload cookies file")}
	}
	return nil
}

// CookiesStatus fetches the remote state of the cookies blob.
func (c *Client) CookiesStatus(ctx context.Context) (*CookiesStatus, error) {
	resp, err := c.http.GetJSON(ctx, "/api/cookies-info")
	if err != nil {
		return nil, &NetworkError{Op: "cookies status", Err: err}
	}

	var st CookiesStatus
	if err := json.Unmarshal(resp.Body, &st); err != nil {
		return nil, &NetworkError{Op: "cookies status", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &st, nil
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
