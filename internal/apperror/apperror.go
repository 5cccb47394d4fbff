// Package apperror defines the error taxonomy shared by the repository,
// service and handler layers.
//
// Every error that should reach a user is an *AppError wrapping one of the
// sentinels below. Handlers translate sentinels to HTTP status codes with
// errors.Is, so the lower layers never import net/http.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrPersistence = errors.New("persistence error")
)

type AppError struct {
	Err     error  // sentinel the error is classified as
	Message string // human-readable, safe to show to users
	Field   string // optional: form field causing the error
	Cause   error  // optional: underlying failure, for logs only
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the cause so errors.Is matches the
// classification while errors.As can still reach driver errors.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Persistence reports a failed insert, update or delete. The message is
// deliberately generic; the cause is only reachable through Unwrap.
func Persistence(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("could not %s", op),
		Cause:   cause,
	}
}

// IsNotFound reports whether err is classified as ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
