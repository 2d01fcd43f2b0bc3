package contacts

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates an unknown contact or phone number
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a contact name or phone number that already exists
	ErrDuplicate = errors.New("already exists")
)

// ValidationError describes a raw value rejected by a field rule
type ValidationError struct {
	Field    string
	Value    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Expected)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
