package api

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a 2xx response whose body did not carry a
// recognizable payload.
var ErrInvalidResponse = errors.New("invalid response from server")

// Error is a non-2xx backend response. Detail carries the backend's
// "detail" envelope field when present.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// StatusOf returns the HTTP status carried by err, or 0 for transport
// and decode errors.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// DetailOf returns the backend's detail message carried by err, or "".
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
