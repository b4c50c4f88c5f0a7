package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeInvalidInput indicates a request body that could not be read
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"
	// ErrorTypeValidation indicates a request body that does not match its schema
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// SlotError represents a custom error with additional context
type SlotError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   string
}

// Error implements the error interface
func (e *SlotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *SlotError) Unwrap() error {
	return e.Err
}

// New creates a new SlotError
func New(errType ErrorType, message string, err error) *SlotError {
	_, file, line, _ := runtime.Caller(1)
	stack := fmt.Sprintf("%s:%d", file, line)

	return &SlotError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func is(err error, errType ErrorType) bool {
	var slotErr *SlotError
	return errors.As(err, &slotErr) && slotErr.Type == errType
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool { return is(err, ErrorTypeInvalidInput) }

// IsValidation checks if the error is a schema validation error
func IsValidation(err error) bool { return is(err, ErrorTypeValidation) }

// RecoverError converts a recovered panic value to a SlotError
func RecoverError(r interface{}) error {
	if r == nil {
		return nil
	}

	var err error
	switch v := r.(type) {
	case error:
		err = v
	case string:
		err = errors.New(v)
	default:
		err = fmt.Errorf("%v", v)
	}

	return New(ErrorTypeInternal, "recovered from panic", err)
}
