package model

import "fmt"

// ValidationError reports a value that cannot be constructed because a
// mandatory field is missing or blank.
type ValidationError struct {
	Field   string // Name of the offending field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
