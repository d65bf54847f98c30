// Package apperr defines the error taxonomy shared by the store and handler
// layers. Domain code wraps one of the sentinel kinds; the HTTP boundary maps
// the kind to a status code without inspecting the message.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrNotFound marks a missing entity reference.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an invalid state transition, duplicate registration
	// or idempotency violation.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks malformed or inconsistent input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a missing, expired or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an insufficiently privileged credential.
	ErrForbidden = errors.New("forbidden")
	// ErrInternal marks an unexpected collaborator failure.
	ErrInternal = errors.New("internal error")
)

func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func Validation(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func Unauthorized(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}

func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

func Internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }

// Status maps an error to its HTTP status code. Unrecognized errors are
// treated as internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
