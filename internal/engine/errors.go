// internal/engine/errors.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common engine errors
var (
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrInvalidURL      = errors.New("invalid URL")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeHTTPStatus   ErrorCode = "HTTP_STATUS"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
	ErrCodeBrowser      ErrorCode = "BROWSER"
	ErrCodeValidation   ErrorCode = "VALIDATION"
)

// Error wraps a fetch failure with its code and URL
type Error struct {
	Code       ErrorCode
	URL        string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches another *Error by code, otherwise defers to the underlying error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewError creates a new Error
func NewError(code ErrorCode, url, message string, err error) *Error {
	return &Error{
		Code:       code,
		URL:        url,
		Message:    message,
		Underlying: err,
	}
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// GetStatusCode returns the HTTP status code
func (e *StatusError) GetStatusCode() int {
	return e.StatusCode
}

// ClassifyTransport maps a client error onto a timeout or network Error
func ClassifyTransport(url string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewError(ErrCodeTimeout, url, "request timed out", err)
	}
	return NewError(ErrCodeNetworkError, url, "request failed", err)
}

// codes for errors.Is comparisons
var (
	ErrTimeout = &Error{Code: ErrCodeTimeout}
	ErrNetwork = &Error{Code: ErrCodeNetworkError}
	ErrStatus  = &Error{Code: ErrCodeHTTPStatus}
	ErrParse   = &Error{Code: ErrCodeParseError}
)
