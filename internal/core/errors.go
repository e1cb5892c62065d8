package core

import (
	"errors"
	"fmt"
)

// ErrNoRecord is returned by stores when a lookup matches nothing.
var ErrNoRecord = errors.New("record not found")

type ErrorCode string

const (
	ErrUnauthenticated ErrorCode = "NTC_UNAUTHENTICATED"
	ErrForbidden       ErrorCode = "NTC_FORBIDDEN"
	ErrBadRequest      ErrorCode = "NTC_BAD_REQUEST"
	ErrInvalidRange    ErrorCode = "NTC_INVALID_RANGE"
	ErrNotFound        ErrorCode = "NTC_NOT_FOUND"
	ErrInternal        ErrorCode = "NTC_INTERNAL"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrUnauthenticated:
		return 401
	case ErrForbidden:
		return 403
	case ErrBadRequest, ErrInvalidRange:
		return 400
	case ErrNotFound:
		return 404
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
