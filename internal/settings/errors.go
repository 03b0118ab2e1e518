package settings

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is matched by every ValidationError.
var ErrInvalidSettings = errors.New("invalid settings")

// ValidationError describes a rejected settings value.
type ValidationError struct {
	// Field is the settings field that failed validation.
	Field string
	// Message is the user-facing description of the problem.
	Message string
	// Value is the rejected value.
	Value any
	// Code categorizes the validation error.
	Code ValidationErrorCode
}

// Error returns the user-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidSettings.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// GoString includes the field and code for debugging output.
func (e *ValidationError) GoString() string {
	return fmt.Sprintf("settings.ValidationError{Field: %q, Code: %s, Value: %#v}", e.Field, e.Code, e.Value)
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeNotNumeric indicates the seek amount is not a positive number.
	ErrCodeNotNumeric ValidationErrorCode = iota
	// ErrCodeOutOfRange indicates the seek amount exceeds the maximum.
	ErrCodeOutOfRange
	// ErrCodeModifierOnly indicates a binding is empty or has no key.
	ErrCodeModifierOnly
	// ErrCodeDuplicateBinding indicates both bindings are the same.
	ErrCodeDuplicateBinding
	// ErrCodeTypeMismatch indicates a stored value has the wrong type.
	ErrCodeTypeMismatch
)

// String returns a short name for the error code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeNotNumeric:
		return "not_numeric"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeModifierOnly:
		return "modifier_only"
	case ErrCodeDuplicateBinding:
		return "duplicate_binding"
	case ErrCodeTypeMismatch:
		return "type_mismatch"
	default:
		return "unknown"
	}
}
