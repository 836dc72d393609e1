package errors

import (
	"errors"
)

var (
	// ErrValidation marks caller-correctable input failures. Wrap it with
	// fmt.Errorf("%w: ...") to carry the field-specific message.
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")

	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// ErrTaskNotFound covers both a missing task and a task owned by another
	// user. The two cases must stay indistinguishable to the caller.
	ErrTaskNotFound = errors.New("task not found")
)
