package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested document does not exist in the store.
var ErrNotFound = errors.New("document not found")

// ValidationError reports which document field failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
