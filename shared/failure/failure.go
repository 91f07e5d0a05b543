package failure

import (
	"errors"
	"hotelpms/shared/constant"
	"net/http"

	"github.com/lib/pq"
)

// Failure is an error a client can act on. Code is the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error a Failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest turns err into a 400 keeping err as the cause. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error(), cause: err}
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "booking not found".
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// GetCode returns the status carried by err, 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// FromPostgres converts constraint violations and malformed input values raised by Postgres into
// client facing failures. Any other error is returned unchanged.
func FromPostgres(err error, conflictMessage string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	var fail *Failure

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation, constant.PqErrorCodeExclusionViolation:
		fail = &Failure{Code: http.StatusConflict, Message: conflictMessage}
	case constant.PqErrorCodeFkViolation:
		fail = &Failure{Code: http.StatusBadRequest, Message: "referenced record does not exist or is still in use"}
	case constant.PqErrorCodeCheckViolation, constant.PqErrorCodeInvalidText:
		fail = &Failure{Code: http.StatusBadRequest, Message: pqErr.Message}
	default:
		return err
	}

	fail.cause = err

	return fail
}

// IsFailure reports whether err carries a Failure with the given code.
func IsFailure(err error, code int) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code == code
	}

	return false
}
