package handover

import "fmt"

// Code is a stable machine-readable error code returned by the handover core.
type Code string

const (
	CodeValidation    Code = "validation_error"
	CodeNotFound      Code = "not_found"
	CodeScopeMismatch Code = "scope_mismatch"
	CodeDuplicate     Code = "duplicate_handover"
	CodeInvalidState  Code = "invalid_state"
)

// Error is the discriminated failure type for all core operations. Callers
// branch on Code; Message is for humans.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is match two core errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(CodeValidation, format, args...)
}

func notFoundError(format string, args ...interface{}) *Error {
	return newError(CodeNotFound, format, args...)
}

func scopeMismatchError(format string, args ...interface{}) *Error {
	return newError(CodeScopeMismatch, format, args...)
}

func duplicateError(format string, args ...interface{}) *Error {
	return newError(CodeDuplicate, format, args...)
}

func invalidStateError(format string, args ...interface{}) *Error {
	return newError(CodeInvalidState, format, args...)
}

// CodeOf extracts the core error code, or "" for foreign errors.
func CodeOf(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
