package slots

import "errors"

// Domain rejections. These are normal outcomes of racing sessions, derived
// from a conditional write that matched no row plus a re-read; callers map
// them to actionable messages. Anything else coming out of the service is a
// dependency fault and retryable.
var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotTaken        = errors.New("slot already taken")
	ErrAlreadyRequested = errors.New("cancellation already requested")
	ErrWrongContact     = errors.New("contact does not match claimant")
	ErrNotClaimed       = errors.New("slot is not claimed")
	ErrAlreadyHandled   = errors.New("cancellation request already handled")
)

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
