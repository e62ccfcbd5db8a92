// Package failure maps domain errors onto HTTP statuses.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the API reports to the caller as-is, with Code as the response status.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return newFailure(code, err.Error())
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error { return wrap(http.StatusBadRequest, err) }

// InternalError wraps err as a 500 whose message reaches the caller. A nil err stays nil.
func InternalError(err error) error { return wrap(http.StatusInternalServerError, err) }

func BadRequestFromString(msg string) error { return newFailure(http.StatusBadRequest, msg) }

func Unauthorized(msg string) error { return newFailure(http.StatusUnauthorized, msg) }

func Forbidden(msg string) error { return newFailure(http.StatusForbidden, msg) }

func NotFound(msg string) error { return newFailure(http.StatusNotFound, msg) }

func Conflict(msg string) error { return newFailure(http.StatusConflict, msg) }

// Unprocessable is returned when input is well formed but cannot be turned into output,
// e.g. a document missing a field its template needs.
func Unprocessable(msg string) error { return newFailure(http.StatusUnprocessableEntity, msg) }

// IsFailure reports whether err wraps a Failure.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}

// GetCode returns the HTTP status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
