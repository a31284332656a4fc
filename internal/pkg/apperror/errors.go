package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marcos-nsantos/resize-cache/internal/domain"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromError classifies err by its domain kind. Client errors keep their
// message; server errors get a fixed one.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch domain.Kind(err) {
	case domain.ErrInvalidInput:
		return &AppError{Code: "BAD_REQUEST", Message: domain.Message(err), StatusCode: http.StatusBadRequest, Err: err}
	case domain.ErrNotFound:
		return &AppError{Code: "NOT_FOUND", Message: domain.Message(err), StatusCode: http.StatusNotFound, Err: err}
	case domain.ErrDecode:
		return &AppError{Code: "DECODE_ERROR", Message: domain.Message(err), StatusCode: http.StatusUnprocessableEntity, Err: err}
	case domain.ErrDisabled:
		return &AppError{Code: "DISABLED", Message: domain.Message(err), StatusCode: http.StatusServiceUnavailable, Err: err}
	case domain.ErrEncode:
		return &AppError{Code: "ENCODE_ERROR", Message: "image could not be encoded", StatusCode: http.StatusInternalServerError, Err: err}
	case domain.ErrStorage:
		return &AppError{Code: "STORAGE_ERROR", Message: "image could not be stored", StatusCode: http.StatusInternalServerError, Err: err}
	default:
		return Internal(err)
	}
}

func StatusCode(err error) int {
	return FromError(err).StatusCode
}
