package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error

	// reason tells apart failures that share a public code and message.
	// It is never rendered.
	reason string
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError with the same code and reason.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.reason == t.reason
}

// Wrap returns a copy of e carrying cause.
func (e *DomainError) Wrap(cause error) error {
	cp := *e
	cp.Err = cause
	return &cp
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func newReasoned(code, message string, status int, reason string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, reason: reason}
}

// Identity and authentication failures. ErrEmailNotFound and ErrInvalidPassword
// render identically so callers cannot probe which emails are registered.
var (
	ErrDuplicateEmail   = NewDomainError("DUPLICATE_EMAIL", "email already registered", http.StatusConflict, nil)
	ErrSlugExhausted    = NewDomainError("SLUG_EXHAUSTED", "could not allocate a unique slug", http.StatusConflict, nil)
	ErrInvalidAdminCode = NewDomainError("INVALID_ADMIN_CODE", "invalid admin registration code", http.StatusForbidden, nil)
	ErrEmailNotFound    = newReasoned("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, "email_not_found")
	ErrInvalidPassword  = newReasoned("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, "invalid_password")
	ErrStoreUnavailable = NewDomainError("STORE_UNAVAILABLE", "storage temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrMalformedInput   = NewDomainError("MALFORMED_INPUT", "malformed input", http.StatusBadRequest, nil)
)

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewMalformedInput reports a missing field.
func NewMalformedInput(field string) error {
	return NewMalformedField(field, fmt.Sprintf("%s is required", field))
}

// NewMalformedField reports a field rejected for the given reason.
func NewMalformedField(field, message string) error {
	return &DomainError{
		Code:       ErrMalformedInput.Code,
		Message:    message,
		HTTPStatus: ErrMalformedInput.HTTPStatus,
		Details:    map[string]any{"field": field},
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewDomainError(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ToDomainError(ErrStoreUnavailable.Wrap(err))
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "HTTP_ERROR"
	}
}
