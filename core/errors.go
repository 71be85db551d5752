package core

import "github.com/pkg/errors"

// FieldError reports a problem with a single payload field, named by its
// JSON tag so it can be shown next to the corresponding form input.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries field-level failures in a renderable form, whether
// they come from the local validator or from the backend's 422 responses.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks a fault the process cannot serve through, such as session
// storage becoming unwritable.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err (or its cause) asks for a process stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
