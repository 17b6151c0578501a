package api

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ytgrab/http"
)

func testClient(srv *httptest.Server) *Client {
	cfg := http.DefaultConfig()
	cfg.BaseURL = srv.URL
	return NewClient(http.New(cfg))
}

func TestFetchInfoSuccess(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/api/info" {
			t.Errorf("path = %q, want /api/info", r.URL.Path)
		}
		io.WriteString(w, `{"success":true,"info":{"title":"T","uploader":"U","duration":125,"upload_date":"20240115","view_count":1500000,"description":"d","thumbnail":"https://i.ytimg.com/t.jpg"}}`)
	}))
	defer srv.Close()

	info, err := testClient(srv).FetchInfo(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("FetchInfo() error = %v", err)
	}
	if info.Title != "T" || info.Uploader != "U" || info.Duration != 125 {
		t.Errorf("info = %+v", info)
	}
	if info.UploadDate != "20240115" || info.ViewCount != 1500000 {
		t.Errorf("info = %+v", info)
	}
}

func TestFetchInfoValidationBlocksNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		called = true
	}))
	defer srv.Close()
	c := testClient(srv)

	for _, url := range []string{"", "   ", "not a url", "https://vimeo.com/1"} {
		_, err := c.FetchInfo(context.Background(), url)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("FetchInfo(%q) error = %v, want *ValidationError", url, err)
		}
	}
	if called {
		t.Error("validation failure still reached the network")
	}
}

func TestFetchInfoServiceError(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusInternalServerError)
		io.WriteString(w, `{"success":false,"error":"Video unavailable"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchInfo(context.Background(), "https://youtu.be/abc123")
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if serr.Message != "Video unavailable" {
		t.Errorf("message = %q", serr.Message)
	}
}

func TestFetchInfoServiceErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		io.WriteString(w, `{"success":false}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchInfo(context.Background(), "https://youtu.be/abc123")
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if serr.Message != "failed to get video information" {
		t.Errorf("message = %q, want generic fallback", serr.Message)
	}
}

func TestFetchInfoNetworkError(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
	srv.Close() // refuse connections

	_, err := testClient(srv).FetchInfo(context.Background(), "https://youtu.be/abc123")
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
}

func TestCreateJobReturnsID(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/api/download" {
			t.Errorf("path = %q, want /api/download", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		for _, want := range []string{`"url"`, `"format":"video"`, `"quality":"720p"`} {
			if !strings.Contains(string(body), want) {
				t.Errorf("request body %q missing %s", body, want)
			}
		}
		io.WriteString(w, `{"success":true,"download_id":"d1","status":"pending"}`)
	}))
	defer srv.Close()

	id, err := testClient(srv).CreateJob(context.Background(), JobRequest{
		URL: "https://www.youtube.com/watch?v=abc123", Format: "video", Quality: "720p",
	})
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}
	if id != "d1" {
		t.Errorf("id = %q, want d1", id)
	}
}

func TestCreateJobNumericID(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		io.WriteString(w, `{"success":true,"download_id":42}`)
	}))
	defer srv.Close()

	id, err := testClient(srv).CreateJob(context.Background(), JobRequest{URL: "u", Format: "audio", Quality: "256kbps"})
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}
	if id != "42" {
		t.Errorf("id = %q, want 42", id)
	}
}

func TestCreateJobServiceError(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusBadRequest)
		io.WriteString(w, `{"success":false,"error":"quota exceeded"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).CreateJob(context.Background(), JobRequest{URL: "u", Format: "video", Quality: "720p"})
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if serr.Message != "quota exceeded" {
		t.Errorf("message = %q, want quota exceeded", serr.Message)
	}
}

func TestJobStatusPathUsesID(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/api/download/d1/status" {
			t.Errorf("path = %q, want /api/download/d1/status", r.URL.Path)
		}
		io.WriteString(w, `{"status":"completed","title":"T","format_type":"video","quality":"720p","download_url":"/files/d1.mp4"}`)
	}))
	defer srv.Close()

	st, err := testClient(srv).JobStatus(context.Background(), "d1")
	if err != nil {
		t.Fatalf("JobStatus() error = %v", err)
	}
	if st.Status != StatusCompleted || st.DownloadURL != "/files/d1.mp4" {
		t.Errorf("status = %+v", st)
	}
}

func TestJobStatusUnknownJob(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		io.WriteString(w, `{"error":"Not found"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).JobStatus(context.Background(), "nope")
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/api/history" {
			t.Errorf("path = %q, want /api/history", r.URL.Path)
		}
		io.WriteString(w, `{"downloads":[{"id":7,"url":"u","title":"T","format_type":"audio","quality":"256kbps","status":"completed","download_url":"/api/download/7/file"}]}`)
	}))
	defer srv.Close()

	entries, err := testClient(srv).History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].ID != "7" || entries[0].FormatType != "audio" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		io.WriteString(w, `{"status":"healthy","service":"youtube-downloader","timestamp":"2024-01-01T00:00:00"}`)
	}))
	defer srv.Close()

	h, err := testClient(srv).Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.Status != "healthy" {
		t.Errorf("status = %q", h.Status)
	}
}

func TestUploadCookies(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/api/upload-cookies" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if _, _, err := r.FormFile("cookies"); err != nil {
			t.Errorf("missing cookies form file: %v", err)
		}
		io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	err := testClient(srv).UploadCookies(context.Background(), "cookies.txt", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("UploadCookies() error = %v", err)
	}
}

func TestCookiesStatus(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		io.WriteString(w, `{"cookies_file_exists":true,"cookies_file_size":2048}`)
	}))
	defer srv.Close()

	st, err := testClient(srv).CookiesStatus(context.Background())
	if err != nil {
		t.Fatalf("CookiesStatus() error = %v", err)
	}
	if !st.Exists || st.Size != 2048 {
		t.Errorf("status = %+v", st)
	}
}

func TestFileStreamsArtifact(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/files/d1.mp4" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, "artifact")
	}))
	defer srv.Close()

	body, _, err := testClient(srv).File(context.Background(), "/files/d1.mp4")
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "artifact" {
		t.Errorf("body = %q", data)
	}
}
