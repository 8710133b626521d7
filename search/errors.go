package search

import (
	"errors"
	"fmt"
)

var errNoShelters = errors.New("no sheltered areas in range")

// ExhaustedError reports that every allowed attempt returned a route outside
// the distance tolerance.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no route within tolerance after %d attempts", e.Attempts)
}

// ProviderUnavailableError reports a routing or shelter provider that kept
// failing until the search gave up.
type ProviderUnavailableError struct {
	Provider string
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("%s provider unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }
