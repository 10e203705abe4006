// internal/app/system/apierr/apierr.go

// Package apierr defines the error taxonomy shared by the engines and
// the HTTP layer. Engines return *Error values; handlers map them onto
// status codes with Status(). Anything that is not an *Error is treated
// as an internal server error.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindInternal is the fallback for unexpected failures.
	KindInternal Kind = iota
	// KindNotFound: the referenced id has no matching record.
	KindNotFound
	// KindValidation: missing or malformed required fields, or an
	// invalid enum value.
	KindValidation
	// KindConflict: a unique-field collision on create.
	KindConflict
	// KindForbidden: the cooldown-window re-application block.
	KindForbidden
	// KindInvalidCategory: an event name outside the recognized
	// feedback buckets.
	KindInvalidCategory
	// KindDeliveryFailure: the mail transport rejected a notification.
	// The underlying write has already succeeded when this is returned.
	KindDeliveryFailure
)

// Error is a classified request failure with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	// MissingFields lists every absent required field for validation
	// failures, not just the first one found.
	MissingFields []string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a not-found error for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Validation builds a validation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// MissingFields builds a validation error that names every missing field.
func MissingFields(fields []string) *Error {
	return &Error{
		Kind:          KindValidation,
		Message:       "the following fields are required: " + strings.Join(fields, ", "),
		MissingFields: fields,
	}
}

// Conflict builds a unique-collision error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a cooldown-block error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// InvalidCategory builds an unrecognized-event-category error.
func InvalidCategory(eventName string) *Error {
	return &Error{Kind: KindInvalidCategory, Message: "invalid event name for feedback: " + eventName}
}

// DeliveryFailure wraps a transport rejection. The record named by msg
// has already been persisted; callers must not treat this as a rollback.
func DeliveryFailure(msg string, err error) *Error {
	return &Error{Kind: KindDeliveryFailure, Message: msg, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Status maps an error onto an HTTP status code.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvalidCategory:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindDeliveryFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Fields returns the missing-field list carried by a validation error,
// or nil.
func Fields(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.MissingFields
	}
	return nil
}
