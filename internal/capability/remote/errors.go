package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// APIError is a non-2xx response from the remote platform.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	// RetryAfter is set from the Retry-After header on 429 and 503 responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API error (%s %s, status %d): %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed if repeated later.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// OperationError is an asynchronous operation that finished unsuccessfully.
type OperationError struct {
	Operation   string
	OperationID string
	Status      string
	Code        string
	Message     string
}

func (e *OperationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no details"
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	return fmt.Sprintf("%s operation %s ended with status %s: %s", e.Operation, e.OperationID, e.Status, msg)
}

// parseRetryAfter parses a Retry-After header given in seconds.
// Returns 0 if the value is empty or not a valid integer.
func parseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
