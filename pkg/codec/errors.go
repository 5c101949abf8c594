package codec

import "fmt"

const dataInvalidMessage = "received data invalid"

// ParseError is returned by every decode entry point in this package.
// Cause holds the underlying syntax, type or hook error.
type ParseError struct {
	Message string
	Cause   error
}

func newParseError(cause error) *ParseError {
	return &ParseError{Message: dataInvalidMessage, Cause: cause}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
