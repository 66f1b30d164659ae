package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the one error shape the API surfaces: an HTTP status, a short
// machine-readable code and a human-readable message.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, "internal-error", message)
}

// StatusOf resolves the HTTP status for any error. Errors outside the
// taxonomy are treated as internal.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Sanitize hides the detail of non-taxonomy errors in release mode so
// internal failures never leak driver or stack text to clients.
func Sanitize(err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if gin.Mode() == gin.ReleaseMode {
		return Internal("something went wrong")
	}
	return Internal(err.Error())
}
