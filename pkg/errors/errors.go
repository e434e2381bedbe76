// Package errors carries the error codes labeler reports to users.
//
// The placement engine itself never returns errors: malformed geometry is
// tolerated there. Errors come from the layers around it: reading scenes,
// loading configuration, caching and serving. Those layers attach a [Code]
// so the CLI can print a clean message and the HTTP service can pick a
// status without string matching:
//
//	err := errors.New(errors.ErrCodeInvalidScene, "point %d has no id", i)
//	if errors.Is(err, errors.ErrCodeInvalidScene) {
//		...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidConfig, cause, "read %s", path)
//
// INVALID_* codes map to 400, *NOT_FOUND to 404 and UNSUPPORTED to 501.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidChart  Code = "INVALID_CHART"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Codes lists every error code.
var Codes = []Code{
	ErrCodeInvalidInput,
	ErrCodeInvalidScene,
	ErrCodeInvalidChart,
	ErrCodeInvalidFormat,
	ErrCodeInvalidConfig,
	ErrCodeInvalidPath,
	ErrCodeNotFound,
	ErrCodeFileNotFound,
	ErrCodeInternal,
	ErrCodeUnsupported,
}

// Error pairs a code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error that records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e := find(err)
	return e != nil && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause, leaving what a user should
// read. Errors without a code are returned verbatim.
func UserMessage(err error) string {
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code the layout service answers
// with. Errors without a code are internal errors.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScene, ErrCodeInvalidChart,
		ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeInvalidPath:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
