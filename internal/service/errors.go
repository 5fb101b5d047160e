package service

import "strings"

// ValidationError carries the field-level messages produced by payload
// validation. Handlers render it as a 400 with the joined message list.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func newValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}
