package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the failure modes the allocator can surface. Callers
// match with errors.Is, so wrapped errors keep their kind.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

func Validation(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
