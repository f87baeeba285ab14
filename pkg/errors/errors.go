package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Failure category codes. Every error leaving the API client carries one.
const (
	// CodeTransport marks failures where no response was received.
	CodeTransport = "TRANSPORT_ERROR"
	// CodeBackend marks non-success responses reported by the backend.
	CodeBackend = "BACKEND_ERROR"
	// CodeDecode marks success responses whose body could not be decoded.
	CodeDecode = "DECODE_ERROR"
	// CodeValidation marks payloads rejected before any network call.
	CodeValidation = "VALIDATION_ERROR"
)

// fallbackMessage is used when an error body cannot be parsed at all.
const fallbackMessage = "an error occurred"

// Error is a normalized client-side failure. Status holds the HTTP status
// for backend-reported failures and is zero otherwise.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface. The message alone is returned so
// callers surfacing it to users see exactly what the backend reported.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
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

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// FromResponse normalises a non-success backend response. The backend reports
// failures as {"detail": string}; when the body is unparseable the generic
// fallback is used, and when it parses but carries no detail the message is
// derived from the HTTP status.
func FromResponse(status int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return New(CodeBackend, status, fallbackMessage)
	}
	if payload.Detail == "" {
		return New(CodeBackend, status, fmt.Sprintf("request failed with status %d", status))
	}
	return New(CodeBackend, status, payload.Detail)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, CodeTransport, 0, err.Error())
}

// IsCode reports whether err carries the given failure category.
func IsCode(err error, code string) bool {
	e := FromError(err)
	return e != nil && e.Code == code
}
