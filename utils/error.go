package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError marks a caller-correctable failure detected before any
// mutation. The message is the structured reason shown by form collaborators.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IntegrityError marks a delete blocked by existing references.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return e.Message
}

func NewIntegrityError(message string) error {
	return &IntegrityError{Message: message}
}

func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
