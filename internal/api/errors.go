package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is the JSON error envelope returned by every handler.
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func statusError(code int) *Error {
	return &Error{
		StatusCode: code,
		Message:    strings.ToLower(http.StatusText(code)),
	}
}

func NewBadRequestError(message string) *Error {
	err := statusError(http.StatusBadRequest)
	if message != "" {
		err.Message = message
	}
	return err
}

func NewUnauthorizedError() *Error {
	return statusError(http.StatusUnauthorized)
}

func NewNotFoundError() *Error {
	return statusError(http.StatusNotFound)
}

func NewUnprocessableError(cause error) *Error {
	err := statusError(http.StatusUnprocessableEntity)
	err.Err = cause
	return err
}

func NewInternalServerError(cause error) *Error {
	err := statusError(http.StatusInternalServerError)
	err.Err = cause
	return err
}
