package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a typed console error with HTTP awareness.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so predefined values work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusUnprocessableEntity, "validation failed")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrUpstream        = New("UPSTREAM_ERROR", http.StatusBadGateway, "hr api request failed")
	ErrUnavailable     = New("UPSTREAM_UNAVAILABLE", http.StatusServiceUnavailable, "hr api unavailable")
	ErrSubmitInFlight  = New("SUBMIT_IN_FLIGHT", http.StatusConflict, "a submission is already in progress")
	ErrNotConfirmed    = New("NOT_CONFIRMED", http.StatusConflict, "deletion was not confirmed")
	ErrSuperseded      = New("SUPERSEDED", http.StatusConflict, "request superseded by a newer one")
	ErrExportsDisabled = New("EXPORTS_DISABLED", http.StatusNotFound, "exports are disabled")
)

// Upstream builds an error describing a failed HR API response. detail is the
// server supplied message and may be empty.
func Upstream(status int, detail string, cause error) *Error {
	return &Error{Code: ErrUpstream.Code, Status: status, Message: detail, Err: cause}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e
		}
		switch e.Code {
		case ErrUpstream.Code:
			return Wrap(e.Err, ErrUpstream.Code, ErrUpstream.Status, ErrUpstream.Message)
		case ErrUnavailable.Code:
			return Wrap(e.Err, ErrUnavailable.Code, ErrUnavailable.Status, ErrUnavailable.Message)
		}
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// MessageOr returns the user-facing message carried by err, or fallback when
// err carries none (transport failures, upstream responses without detail).
func MessageOr(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != ErrInternal.Code {
		if msg := strings.TrimSpace(e.Message); msg != "" {
			return msg
		}
	}
	return fallback
}
