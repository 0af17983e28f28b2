// Package errors provides coded errors for uccalint.
//
// Structural problems found by the validator are diagnostics, not errors.
// This package covers everything around the core: reading passage files,
// decoding the wire format, talking to caches and stores, and serving HTTP.
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
//	if errors.Is(err, errors.ErrCodeFileNotFound) {
//	    ...
//	}
//
// The standard library's errors.Is and errors.As keep working on wrapped
// causes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category. Codes are part of the HTTP
// API's error body.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"   // bad options or parameters
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"  // undecodable JSON or TOML
	ErrCodeInvalidPassage Code = "INVALID_PASSAGE" // a passage that cannot be built
	ErrCodeInvalidTag     Code = "INVALID_TAG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeTooLarge       Code = "PAYLOAD_TOO_LARGE"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED" // missing external tool or backend
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeInvalidFormat:  http.StatusBadRequest,
	ErrCodeInvalidPassage: http.StatusBadRequest,
	ErrCodeInvalidTag:     http.StatusBadRequest,
	ErrCodeInvalidPath:    http.StatusBadRequest,
	ErrCodeTooLarge:       http.StatusRequestEntityTooLarge,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeFileNotFound:   http.StatusNotFound,
	ErrCodeUnsupported:    http.StatusNotImplemented,
}

// Status returns the HTTP status for c; unknown codes are 500.
func (c Code) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a Code, a message for the user and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is/As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix or cause.
// Uncoded errors are returned as-is.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// HTTPStatus maps err to the status the API responds with. Uncoded errors
// are internal.
func HTTPStatus(err error) int {
	return GetCode(err).Status()
}
