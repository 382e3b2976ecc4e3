package maps

import (
	"errors"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

var (
	// ErrNotInitialized is returned by every operation invoked before
	// Initialize or after Close.
	ErrNotInitialized = eris.New("maps: session not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = eris.New("maps: session already initialized")
	// ErrSessionClosed is returned by Initialize on a closed session.
	ErrSessionClosed = eris.New("maps: session closed")
	// ErrMissingPlaceID is returned by GetReviews for a business that
	// carries no stable place identifier.
	ErrMissingPlaceID = eris.New("maps: business has no place id")
)

// NavigationError reports that the target page could not be loaded.
type NavigationError struct {
	Op  string
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("maps: %s: navigate to %s: %v", e.Op, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ExtractionTimeoutError reports that an expected element never appeared.
type ExtractionTimeoutError struct {
	Op       string
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *ExtractionTimeoutError) Error() string {
	return fmt.Sprintf("maps: %s: %q did not appear within %s", e.Op, e.Selector, e.Timeout)
}

func (e *ExtractionTimeoutError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a navigation or wait failure that a
// caller may reasonably try again.
func IsRetryable(err error) bool {
	var nav *NavigationError
	var timeout *ExtractionTimeoutError
	return errors.As(err, &nav) || errors.As(err, &timeout)
}
