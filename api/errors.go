package api

import "fmt"

// The error taxonomy for service interactions:
//
//   - ValidationError: bad local input; never reaches the network
//   - NetworkError: transport-level failure on any call
//   - ServiceError: well-formed error response from the service
//   - TimeoutError: the polling attempt bound was exhausted
//
// All types support errors.As; NetworkError additionally unwraps to
// its cause.

// ValidationError indicates input rejected before any network call.
type ValidationError struct {
	// Message is the user-facing description
	Message string
}

// Error returns the validation message.
func (e *ValidationError) Error() string {
	return e.Message
}

// NetworkError indicates a transport-level failure.
type NetworkError struct {
	// Op names the call that failed (e.g. "fetch info")
	Op string
	// Err is the underlying transport error
	Err error
}

// Error returns a string representation of the network error.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError indicates the service reported a failure in a
// well-formed response.
type ServiceError struct {
	// Message is the service-supplied (or fallback) error message
	Message string
}

// Error returns the service message.
func (e *ServiceError) Error() string {
	return e.Message
}

// TimeoutError indicates the polling attempt bound was exhausted
// without the job reaching a terminal status.
type TimeoutError struct {
	// Attempts is the number of polls that failed to resolve
	Attempts int
}

// Error returns a string representation of the timeout.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("download timeout after %d status checks - please try again", e.Attempts)
}
