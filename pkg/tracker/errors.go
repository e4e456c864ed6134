package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClient is returned when an operation that needs the remote
	// service is invoked without a location client handle.
	ErrMissingClient = errors.New("location client handle is not set")

	// ErrMalformedIdentity is returned when an identity ID does not have the
	// expected "region:id" form.
	ErrMalformedIdentity = errors.New("identity id is not of the form region:id")
)

// UpdateError reports a batch position update that failed on every attempt.
// It wraps the error from the last attempt.
type UpdateError struct {
	Attempts int
	Err      error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("batch position update failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
