package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is surfaced when the server does not provide one.
const FallbackMessage = "Something went wrong. Please try again."

// APIError is a non-2xx response from the backend, carrying the
// server-provided message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// UserMessage returns the text fit for direct display.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return FallbackMessage
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message extracts a display string from any request error.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return FallbackMessage
}
