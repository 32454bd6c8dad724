// Package validation holds the field-level rules for users and records.
// Everything here is a pure function of its input: no store access, no
// side effects, so create and update paths share identical gating.
package validation

// Error is a field-level validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fieldErr(field, message string) *Error {
	return &Error{Field: field, Message: message}
}
