package services

import (
	"errors"
	"fmt"

	"timesheet/models"
)

// ErrNotFound covers both records that do not exist and records the actor
// is not allowed to touch, so a caller can never probe for existence.
var ErrNotFound = errors.New("timesheet not found or permission denied")

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StateTransitionError carries the current status so the client can refresh
// its view instead of retrying blindly.
type StateTransitionError struct {
	Current   models.Status
	Requested models.Status
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.Current, e.Requested)
}
