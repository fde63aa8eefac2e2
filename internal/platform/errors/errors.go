package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrCorruptDocument    = errors.New("corrupt stored document")
	ErrNoActiveAlarm      = errors.New("no active alarm")
	ErrServiceUnavailable = errors.New("generative service unavailable")
	ErrNoContent          = errors.New("no content returned")
)
