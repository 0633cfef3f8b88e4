package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in API responses. Controllers map these to HTTP
// statuses; the code strings are part of the API contract.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeDuplicateID        = "DUPLICATE_ID"
	CodeRunwayConflict     = "RUNWAY_CONFLICT"
	CodeAircraftConflict   = "AIRCRAFT_CONFLICT"
	CodeCrewMismatch       = "CREW_MISMATCH"
	CodeForbiddenRole      = "FORBIDDEN_ROLE"
	CodeIdentitySpoofing   = "IDENTITY_SPOOFING_REJECTED"
	CodePricingUnavailable = "PRICING_UNAVAILABLE"
	CodeTooLateToCancel    = "TOO_LATE_TO_CANCEL"
	CodeOrderNotFound      = "ORDER_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodePersistence        = "PERSISTENCE_ERROR"
)

// Error is a domain error with a stable code and a user-facing message.
type Error struct {
	Code    string
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code and formatted message.
func New(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a database error. The original error is preserved for
// logging but never leaks into the API message.
func Persistence(err error) *Error {
	return &Error{
		Code:    CodePersistence,
		Message: "a database error occurred",
		Err:     err,
	}
}

// CodeOf returns the domain error code, or CodePersistence for unknown errors.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodePersistence
}

// HTTPStatus maps a domain error to the HTTP status the API responds with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput, CodeCrewMismatch, CodeTooLateToCancel:
		return http.StatusBadRequest
	case CodeDuplicateID, CodeRunwayConflict, CodeAircraftConflict, CodePricingUnavailable:
		return http.StatusConflict
	case CodeForbiddenRole, CodeIdentitySpoofing:
		return http.StatusForbidden
	case CodeOrderNotFound, CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
