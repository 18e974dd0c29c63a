package todo

import "errors"

var (
	// ErrNotFound is returned when no record matches an id.
	ErrNotFound = errors.New("todo not found")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError not tied to a field.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
