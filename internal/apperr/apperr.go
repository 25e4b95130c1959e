package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation  Kind = "validation_error"
	KindNotFound    Kind = "not_found"
	KindForbidden   Kind = "forbidden"
	KindRateLimited Kind = "rate_limited"
	KindInternal    Kind = "internal_error"
)

// FieldError points at one offending input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the error type every handler failure is mapped to before it
// reaches the client.
type Error struct {
	Kind Kind
	// Code replaces Kind as the machine-readable error string when set.
	Code       string
	Message    string
	Issues     []FieldError
	RetryAfter int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode is the string clients switch on.
func (e *Error) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return string(e.Kind)
}

// WithCode returns e with a more specific machine-readable code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

func Validation(message string, issues ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Issues: issues}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func RateLimited(retryAfter int) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Message:    "Too many requests, please try again later.",
		RetryAfter: retryAfter,
	}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Something went wrong. Please try again.", Err: err}
}

// As extracts an *Error from err, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
