package ytgrab

import (
	"context"
	"io"

	"ytgrab/api"
	transport "ytgrab/http"
	"ytgrab/session"
	"ytgrab/youtube"
)

// NewClient returns a service client for the given base URL. An empty
// baseURL uses the default transport configuration.
func NewClient(baseURL string) *api.Client {
	if baseURL == "" {
		return api.NewClient(nil)
	}
	cfg := transport.DefaultConfig()
	cfg.BaseURL = baseURL
	return api.NewClient(transport.New(cfg))
}

// FetchInfo resolves a video URL into descriptive metadata using the
// service at baseURL.
func FetchInfo(ctx context.Context, baseURL, videoURL string) (*api.VideoInfo, error) {
	return NewClient(baseURL).FetchInfo(ctx, videoURL)
}

// Download submits a download job and blocks until the session reaches
// a terminal outcome. An empty quality picks the format's default.
//
// The call returns the completed result, or the session's terminal
// error: a *ValidationError for rejected input, a *NetworkError or
// *ServiceError for a failed job, or a *TimeoutError when the status
// polls are exhausted.
func Download(ctx context.Context, baseURL, videoURL string, format youtube.Format, quality string) (session.DownloadResult, error) {
	client := NewClient(baseURL)
	ev := &terminalEvents{
		results: make(chan session.DownloadResult, 1),
		errs:    make(chan error, 1),
	}
	ctrl := session.NewController(client, ev, session.DefaultConfig())

	if _, err := ctrl.Submit(ctx, videoURL, format, quality); err != nil {
		return session.DownloadResult{}, err
	}

	select {
	case <-ctx.Done():
		ctrl.Dismiss()
		return session.DownloadResult{}, ctx.Err()
	case r := <-ev.results:
		return r, nil
	case err := <-ev.errs:
		return session.DownloadResult{}, err
	}
}

// UploadCookies ships a Netscape-format cookies file to the service.
func UploadCookies(ctx context.Context, baseURL, filename string, r io.Reader) error {
	return NewClient(baseURL).UploadCookies(ctx, filename, r)
}

// terminalEvents captures only the terminal outcome of a session.
type terminalEvents struct {
	results chan session.DownloadResult
	errs    chan error
}

func (*terminalEvents) OnStateChange(session.Session) {}

func (e *terminalEvents) OnResult(r session.DownloadResult) {
	select {
	case e.results <- r:
	default:
	}
}

func (e *terminalEvents) OnError(err error) {
	select {
	case e.errs <- err:
	default:
	}
}
