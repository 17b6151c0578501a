// Package session implements the download session controller: the
// state machine that turns a validated request into a remote job,
// polls its status on a fixed interval with a bounded attempt count,
// and emits exactly one terminal outcome per session.
package session

import (
	"ytgrab/api"
	"ytgrab/youtube"
)

// State is a download session's position in its lifecycle.
type State string

const (
	// StateIdle means no submission has happened yet
	StateIdle State = "idle"
	// StateSubmitting means the job-creation call is in flight
	StateSubmitting State = "submitting"
	// StatePolling means the job was accepted and status polls are running
	StatePolling State = "polling"
	// StateCompleted is the terminal success state
	StateCompleted State = "completed"
	// StateFailed is the terminal failure state
	StateFailed State = "failed"
)

// Terminal reports whether no further automatic transitions occur.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Session is one user-initiated download attempt from submission to
// terminal outcome. Controllers hand out value snapshots; the token
// identifies a session across supersession.
type Session struct {
	// Token is the client-side identity used to detect supersession
	Token string
	// URL is the validated source URL
	URL string
	// Format is the requested content kind
	Format youtube.Format
	// Quality is the requested quality label
	Quality string
	// JobID is the service-assigned identifier, empty until the job
	// is accepted and immutable afterwards
	JobID api.JobID
	// State is the current lifecycle position
	State State
	// Attempts counts status polls that resolved to "still working"
	Attempts int
	// Err carries the terminal failure reason when State is StateFailed
	Err error
}

// DownloadResult is the terminal payload of a completed session.
type DownloadResult struct {
	Title       string
	Format      youtube.Format
	Quality     string
	DownloadURL string
}

// Events receives controller notifications. Implementations must not
// block; they are invoked from the session's polling goroutine.
type Events interface {
	// OnStateChange is called on every transition and on each poll tick.
	OnStateChange(s Session)
	// OnResult is called once when a session completes.
	OnResult(r DownloadResult)
	// OnError is called once when a session fails.
	OnError(err error)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) OnStateChange(Session)        {}
func (NopEvents) OnResult(DownloadResult)      {}
func (NopEvents) OnError(error)                {}
