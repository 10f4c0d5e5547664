package apperr

import "errors"

// ErrNotFound maps to 404 in handlers.
var ErrNotFound = errors.New("Record not found")

// ValidationError is a user-correctable input error. Field identifies the
// offending input so the caller can surface it next to the right form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError for a field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// ReferentialError means a supplied reference does not resolve to an existing,
// non-deleted row. It fails the operation before any write happens.
type ReferentialError struct {
	Field   string
	Message string
}

func (e *ReferentialError) Error() string {
	return e.Message
}

// Referential builds a ReferentialError for a field.
func Referential(field, message string) error {
	return &ReferentialError{Field: field, Message: message}
}

// AsReferential unwraps err into a ReferentialError if it is one.
func AsReferential(err error) (*ReferentialError, bool) {
	var r *ReferentialError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
