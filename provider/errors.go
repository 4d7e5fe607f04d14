package provider

import "strings"

type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing or invalid field " + e.Field
}

func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

type NotFoundError struct {
	Name      string
	Supported []string
}

func (e *NotFoundError) Error() string {
	return "unknown provider '" + e.Name + "', supported providers: " + strings.Join(e.Supported, ", ")
}
