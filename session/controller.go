package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ytgrab/api"
	"ytgrab/youtube"
)

// ErrSuperseded reports that another submission replaced a session
// while its job-creation call was still in flight.
var ErrSuperseded = errors.New("session superseded by a newer submission")

// JobService is the slice of the remote contract the controller needs.
// *api.Client satisfies it.
type JobService interface {
	CreateJob(ctx context.Context, req api.JobRequest) (api.JobID, error)
	JobStatus(ctx context.Context, id api.JobID) (*api.JobStatus, error)
}

// Config holds the polling parameters.
type Config struct {
	// PollInterval is the fixed delay between status polls
	PollInterval time.Duration
	// MaxAttempts bounds how many polls may resolve to "still working"
	// before the session fails with a timeout
	MaxAttempts int
	// SettleDelay is a brief pause between observing a completed
	// status and surfacing the result; zero disables it
	SettleDelay time.Duration
}

// DefaultConfig matches the documented protocol: one poll every 5
// seconds, at most 60 attempts (about a 5 minute ceiling).
func DefaultConfig() Config {
	return Config{
		PollInterval: 5 * time.Second,
		MaxAttempts:  60,
		SettleDelay:  time.Second,
	}
}

// Controller owns the single active download session. A new submission
// supersedes the previous session: any in-flight request or scheduled
// poll belonging to the old session becomes a no-op when it resolves.
type Controller struct {
	svc    JobService
	events Events
	clock  Clock
	cfg    Config

	mu     sync.Mutex
	active *Session
}

// NewController creates a controller using the system clock.
func NewController(svc JobService, events Events, cfg Config) *Controller {
	return NewControllerWithClock(svc, events, cfg, SystemClock())
}

// NewControllerWithClock creates a controller with an injected clock.
func NewControllerWithClock(svc JobService, events Events, cfg Config, clock Clock) *Controller {
	if events == nil {
		events = NopEvents{}
	}
	def := DefaultConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	return &Controller{svc: svc, events: events, clock: clock, cfg: cfg}
}

// Submit validates the request, creates the remote job, and starts the
// polling loop for a fresh session. Validation failures return a
// *api.ValidationError without any network call and leave the current
// session untouched. A successful submission supersedes any prior
// session.
//
// The returned Session is a snapshot taken right after submission.
func (c *Controller) Submit(ctx context.Context, rawURL string, format youtube.Format, quality string) (Session, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Session{}, c.reject(&api.ValidationError{Message: "please enter a YouTube URL"})
	}
	if !youtube.IsValidSource(rawURL) {
		return Session{}, c.reject(&api.ValidationError{Message: "please enter a valid YouTube URL"})
	}
	if !format.Valid() {
		return Session{}, c.reject(&api.ValidationError{Message: "invalid format type"})
	}
	if quality == "" {
		quality = youtube.DefaultQuality(format)
	}
	if !youtube.IsValidQuality(format, quality) {
		return Session{}, c.reject(&api.ValidationError{Message: "invalid quality for " + format.String()})
	}

	s := &Session{
		Token:   uuid.NewString(),
		URL:     rawURL,
		Format:  format,
		Quality: quality,
		State:   StateSubmitting,
	}

	c.mu.Lock()
	c.active = s
	snap := *s
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"url":     rawURL,
		"format":  format,
		"quality": quality,
	}).Info("submitting download")
	c.events.OnStateChange(snap)

	id, err := c.svc.CreateJob(ctx, api.JobRequest{URL: rawURL, Format: format, Quality: quality})

	c.mu.Lock()
	if c.active != s {
		c.mu.Unlock()
		return Session{}, ErrSuperseded
	}
	c.mu.Unlock()

	if err != nil {
		c.fail(s, err)
		return c.snapshot(s), err
	}

	c.mu.Lock()
	s.JobID = id
	s.State = StatePolling
	s.Attempts = 0
	snap = *s
	c.mu.Unlock()

	logrus.WithField("job_id", id).Info("download accepted, polling")
	c.events.OnStateChange(snap)

	go c.poll(ctx, s)
	return snap, nil
}

// Active returns a snapshot of the current session, if any.
func (c *Controller) Active() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Session{}, false
	}
	return *c.active, true
}

// Dismiss detaches the active session without cancelling its in-flight
// request; a detached session's late responses are discarded. This is
// the "user edited the input, clear the views" affordance.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}

// poll runs the bounded status loop for one session. Exactly one
// status request is outstanding at a time; the loop exits as soon as
// the session is superseded or dismissed.
func (c *Controller) poll(ctx context.Context, s *Session) {
	for {
		c.mu.Lock()
		attempts := s.Attempts
		c.mu.Unlock()
		if attempts >= c.cfg.MaxAttempts {
			c.fail(s, &api.TimeoutError{Attempts: attempts})
			return
		}

		st, err := c.svc.JobStatus(ctx, s.JobID)
		if !c.isActive(s) {
			// Superseded while the request was in flight; drop it.
			return
		}
		if err != nil {
			// Strict-fail policy: a transport error during polling is
			// terminal, not retried.
			c.fail(s, err)
			return
		}

		switch st.Status {
		case api.StatusCompleted:
			c.settle(ctx)
			c.complete(s, st)
			return
		case api.StatusFailed:
			msg := st.ErrorMessage
			if msg == "" {
				msg = "Download failed"
			}
			c.fail(s, &api.ServiceError{Message: msg})
			return
		default:
			// pending/processing: still working.
			c.mu.Lock()
			if c.active != s {
				c.mu.Unlock()
				return
			}
			s.Attempts++
			snap := *s
			c.mu.Unlock()
			c.events.OnStateChange(snap)
		}

		select {
		case <-ctx.Done():
			c.fail(s, &api.NetworkError{Op: "status poll", Err: ctx.Err()})
			return
		case <-c.clock.After(c.cfg.PollInterval):
		}
	}
}

func (c *Controller) complete(s *Session, st *api.JobStatus) {
	c.mu.Lock()
	if c.active != s {
		c.mu.Unlock()
		return
	}
	s.State = StateCompleted
	snap := *s
	c.mu.Unlock()

	result := DownloadResult{
		Title:       st.Title,
		Format:      s.Format,
		Quality:     s.Quality,
		DownloadURL: st.DownloadURL,
	}
	if st.FormatType != "" {
		result.Format = youtube.Format(st.FormatType)
	}
	if st.Quality != "" {
		result.Quality = st.Quality
	}

	logrus.WithFields(logrus.Fields{
		"job_id": s.JobID,
		"title":  result.Title,
	}).Info("download completed")
	c.events.OnStateChange(snap)
	c.events.OnResult(result)
}

func (c *Controller) fail(s *Session, err error) {
	c.mu.Lock()
	if c.active != s {
		c.mu.Unlock()
		return
	}
	s.State = StateFailed
	s.Err = err
	snap := *s
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"job_id": s.JobID,
		"error":  err,
	}).Warn("download failed")
	c.events.OnStateChange(snap)
	c.events.OnError(err)
}

// reject surfaces a validation error to the events sink and returns it.
func (c *Controller) reject(err error) error {
	c.events.OnError(err)
	return err
}

func (c *Controller) settle(ctx context.Context) {
	if c.cfg.SettleDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-c.clock.After(c.cfg.SettleDelay):
	}
}

func (c *Controller) isActive(s *Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active == s
}

func (c *Controller) snapshot(s *Session) Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *s
}
