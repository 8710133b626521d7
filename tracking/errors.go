package tracking

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is wrapped by LocationUnavailableError when the user
// refuses location access.
var ErrPermissionDenied = errors.New("location permission denied")

var errInvalidFix = errors.New("initial fix has invalid coordinates")

// LocationUnavailableError reports that no position could be obtained at start.
// Calling Start again may succeed.
type LocationUnavailableError struct {
	Err error
}

func (e *LocationUnavailableError) Error() string {
	return fmt.Sprintf("location unavailable: %v", e.Err)
}

func (e *LocationUnavailableError) Unwrap() error { return e.Err }

// LowAccuracyError reports an initial fix that is too inaccurate to start guidance.
// Calling Start again may succeed.
type LowAccuracyError struct {
	Accuracy  float64
	Threshold float64
}

func (e *LowAccuracyError) Error() string {
	return fmt.Sprintf("gps accuracy %.0fm exceeds %.0fm", e.Accuracy, e.Threshold)
}
