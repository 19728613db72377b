package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Aggregation errors
	ErrColumnIndexOutOfRange = errors.New("column index out of range")
	ErrNonNumericValue       = errors.New("non-numeric value")
	ErrSequencingViolation   = errors.New("timestamp sequencing violation")

	// Stream errors
	ErrStreamClosed = errors.New("stream closed")
	ErrLineTooLong  = errors.New("line too long")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// File/IO errors
	ErrFileNotFound = errors.New("file not found")
	ErrReadFailed   = errors.New("read failed")
)

// Error wrapping functions

// Wrap wraps an error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// New creates a new error with formatted message
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to extract a specific error type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the wrapped error
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
