// Package apperror defines the error taxonomy shared by the API handlers and
// the editor workflow. Every backend-facing call is wrapped into one of these
// categories at the call site; handlers map them to HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuth       = errors.New("authentication required")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrQuery      = errors.New("query failed")
	ErrUpload     = errors.New("upload failed")
	ErrPersist    = errors.New("persist failed")
	ErrCleanup    = errors.New("cleanup failed")
)

type AppError struct {
	Err     error  // category sentinel
	Message string // human-readable message surfaced to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id uint) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}

func Query(err error) *AppError {
	return &AppError{
		Err:     ErrQuery,
		Message: fmt.Sprintf("query failed: %v", err),
	}
}

func Upload(err error) *AppError {
	return &AppError{
		Err:     ErrUpload,
		Message: fmt.Sprintf("image upload failed: %v", err),
	}
}

// Persist wraps a row insert/update/delete failure, keeping the backend's
// message so it can be surfaced to the admin.
func Persist(err error) *AppError {
	return &AppError{
		Err:     ErrPersist,
		Message: fmt.Sprintf("save failed: %v", err),
	}
}

func Cleanup(err error) *AppError {
	return &AppError{
		Err:     ErrCleanup,
		Message: fmt.Sprintf("cleanup failed: %v", err),
	}
}

// HTTPStatus maps an error to the response status its category calls for.
// Unrecognized errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpload), errors.Is(err, ErrPersist),
		errors.Is(err, ErrQuery), errors.Is(err, ErrCleanup):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
