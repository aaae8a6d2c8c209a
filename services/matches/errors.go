package matches

import "errors"

var ErrMatchNotFound = errors.New("match not found")

// ValidationError rejects bad input before any store access. The message is
// user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
