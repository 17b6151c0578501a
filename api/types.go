package api

import (
	"encoding/json"
	"fmt"

	"ytgrab/youtube"
)

// JobID is the opaque identifier the service assigns to a submitted
// download job. The deployed service emits integer ids while the
// documented contract treats them as opaque strings, so it decodes
// from either JSON form.
type JobID string

// UnmarshalJSON accepts both a JSON string and a JSON number.
func (id *JobID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("download_id: %w", err)
	}
	*id = JobID(n.String())
	return nil
}

// String returns the id as used in status-poll paths.
func (id JobID) String() string {
	return string(id)
}

// VideoInfo is the metadata snapshot returned by the info endpoint.
// Zero values mean the service did not supply the field.
type VideoInfo struct {
	Title       string `json:"title"`
	Uploader    string `json:"uploader"`
	Duration    int64  `json:"duration"`
	UploadDate  string `json:"upload_date"` // YYYYMMDD
	ViewCount   int64  `json:"view_count"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// JobRequest is the job-creation payload.
type JobRequest struct {
	URL     string         `json:"url"`
	Format  youtube.Format `json:"format"`
	Quality string         `json:"quality"`
}

// Job status values the controller recognizes. Anything else counts
// as "still working".
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// JobStatus is one status-poll response.
type JobStatus struct {
	Status       string `json:"status"`
	Title        string `json:"title"`
	FormatType   string `json:"format_type"`
	Quality      string `json:"quality"`
	DownloadURL  string `json:"download_url"`
	ErrorMessage string `json:"error_message"`
}

// HistoryEntry is one record from the download history endpoint.
type HistoryEntry struct {
	ID           JobID  `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	FormatType   string `json:"format_type"`
	Quality      string `json:"quality"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	CreatedAt    string `json:"created_at"`
	CompletedAt  string `json:"completed_at"`
	DownloadURL  string `json:"download_url"`
}

// CookiesStatus is the remote state of the auxiliary cookies blob.
type CookiesStatus struct {
	Exists bool  `json:"cookies_file_exists"`
	Size   int64 `json:"cookies_file_size"`
}

// HealthStatus is the service health-check response.
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// envelope covers the success/error wrapper the service puts around
// most responses.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type infoResponse struct {
	envelope
	Info *VideoInfo `json:"info"`
}

type createResponse struct {
	envelope
	DownloadID JobID `json:"download_id"`
}

type historyResponse struct {
	envelope
	Downloads []HistoryEntry `json:"downloads"`
}
