// Package clients provides HTTP client adapters for downstream services.
package clients

import (
	"errors"
	"fmt"
)

// Client errors are infrastructure failures. Callers translate them into
// domain errors.
var (
	// ErrCircuitOpen is returned while the breaker is rejecting requests.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once retries run out.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError is the retryable failure recorded for a 5xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}
