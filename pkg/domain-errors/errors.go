// Package domainerrors defines the coded error taxonomy exposed to callers.
// Stores return sentinel errors; services translate them into coded errors
// here so transport can map codes to HTTP statuses without inspecting
// infrastructure details.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeNotFound: the addressed resource does not exist under the given
	// tenant (e.g. project absent).
	CodeNotFound Code = "not_found"
	// CodeForbidden: the principal has no membership in the tenant, or its
	// role is not in the permitted set.
	CodeForbidden Code = "forbidden"
	// CodeValidation: malformed date/parameter input, rejected before any
	// query is issued.
	CodeValidation Code = "validation"
	// CodeUpstreamQuery: the time-series store is unreachable or returned a
	// malformed response.
	CodeUpstreamQuery Code = "upstream_query"
	// CodeInternal: anything else.
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to an HTTP status for the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUpstreamQuery:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
