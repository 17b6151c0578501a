// Package cookies manages the auxiliary cookies.txt blob the service
// uses to bypass bot detection: upload and status check, nothing more.
package cookies

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"ytgrab/api"
)

// Service is the slice of the remote contract the manager needs.
// *api.Client satisfies it.
type Service interface {
	UploadCookies(ctx context.Context, filename string, r io.Reader) error
	CookiesStatus(ctx context.Context) (*api.CookiesStatus, error)
}

// Manager uploads the cookies blob and tracks its last known remote
// status. There is no polling and no retry; the status is refreshed
// once at initialization (by the caller) and after every successful
// upload.
type Manager struct {
	svc Service

	mu   sync.Mutex
	last *api.CookiesStatus
}

// NewManager creates a manager over the given service client.
func NewManager(svc Service) *Manager {
	return &Manager{svc: svc}
}

// Upload sends the file at path to the service. Files whose name does
// not end in .txt are rejected with a *api.ValidationError before any
// I/O. A successful upload refreshes the cached status.
func (m *Manager) Upload(ctx context.Context, path string) error {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), ".txt") {
		return &api.ValidationError{Message: "please upload a .txt file"}
	}

	f, err := os.Open(path)
	if err != nil {
		return &api.ValidationError{Message: "cannot read cookies file: " + err.Error()}
	}
	defer f.Close()

	if err := m.svc.UploadCookies(ctx, name, f); err != nil {
		return err
	}
	logrus.WithField("file", name).Info("cookies uploaded")

	if _, err := m.Status(ctx); err != nil {
		// Upload succeeded; a failed refresh only stales the cache.
		logrus.WithError(err).Warn("cookies status refresh failed")
	}
	return nil
}

// Status fetches the remote blob state and caches it.
func (m *Manager) Status(ctx context.Context) (*api.CookiesStatus, error) {
	st, err := m.svc.CookiesStatus(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.last = st
	m.mu.Unlock()
	return st, nil
}

// Last returns the status from the most recent fetch, or nil when none
// has happened yet.
func (m *Manager) Last() *api.CookiesStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
