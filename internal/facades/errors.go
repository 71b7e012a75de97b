package facades

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the user API has no record for an identifier.
	ErrNotFound = errors.New("user not found")

	// ErrRequestFailed is matched by both ErrNetwork and ErrServerRejected.
	ErrRequestFailed = errors.New("user api request failed")

	// ErrNetwork means the request could not be completed.
	ErrNetwork = fmt.Errorf("%w: network error", ErrRequestFailed)

	// ErrServerRejected means the user API answered with a non-success status.
	ErrServerRejected = fmt.Errorf("%w: server rejected request", ErrRequestFailed)
)

// StatusError carries the HTTP status of a rejected request.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// Unwrap makes errors.Is(err, ErrServerRejected) hold.
func (e *StatusError) Unwrap() error {
	return ErrServerRejected
}
