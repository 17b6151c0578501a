package ytgrab

import (
	"ytgrab/api"
	"ytgrab/session"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.As() for typed errors:
//
//	var serr *ytgrab.ServiceError
//	if errors.As(err, &serr) {
//		fmt.Println("service rejected the job:", serr.Message)
//	}
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytgrab.ErrSuperseded) {
//		// a newer submission replaced this one
//	}

// Type aliases for convenient error handling.
type (
	// ValidationError reports input rejected before any network call.
	ValidationError = api.ValidationError
	// NetworkError wraps a transport failure while talking to the service.
	NetworkError = api.NetworkError
	// ServiceError carries a failure reported by the service itself.
	ServiceError = api.ServiceError
	// TimeoutError reports a session that exhausted its poll attempts.
	TimeoutError = api.TimeoutError
)

// ErrSuperseded is returned from a submission that a newer submission
// replaced while its job-creation call was in flight.
var ErrSuperseded = session.ErrSuperseded
