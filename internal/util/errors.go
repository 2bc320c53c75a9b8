// internal/util/errors.go
// Application error taxonomy shared by handlers, services and clients.

package util

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeBadInput     = "bad_input"     // missing or malformed request input
	CodeInvalidInput = "invalid_input" // input rejected by the translator (not a place, offensive)
	CodeUpstream     = "upstream"      // third-party provider failed or answered non-2xx
	CodeParse        = "parse"         // provider answered but the payload shape is unusable
	CodeNotFound     = "not_found"
	CodeInternal     = "internal"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e AppError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Code == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e AppError) Unwrap() error { return e.Err }

func BadInput(msg string) AppError     { return AppError{Code: CodeBadInput, Message: msg} }
func InvalidInput(msg string) AppError { return AppError{Code: CodeInvalidInput, Message: msg} }
func NotFound(msg string) AppError     { return AppError{Code: CodeNotFound, Message: msg} }
func Internal(msg string) AppError     { return AppError{Code: CodeInternal, Message: msg} }

func Upstream(msg string, err error) AppError {
	return AppError{Code: CodeUpstream, Message: msg, Err: err}
}

func Parse(msg string, err error) AppError {
	return AppError{Code: CodeParse, Message: msg, Err: err}
}

// CodeOf returns the AppError code found in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var ae AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// MessageOf returns the user-facing message of the AppError in err's chain.
// The wrapped cause is left out on purpose: it may contain raw upstream text.
func MessageOf(err error, def string) string {
	var ae AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return def
}

// HTTPStatus maps an error to the status code the proxy answers with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeBadInput, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
