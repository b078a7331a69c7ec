package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInvalidConfiguration indicates generation parameters were rejected
	ErrorTypeInvalidConfiguration ErrorType = "invalid_configuration"
	// ErrorTypeDegenerateField indicates a constant field that cannot be normalized
	ErrorTypeDegenerateField ErrorType = "degenerate_field"
	// ErrorTypeSamplerFailure indicates the random field sampler failed
	ErrorTypeSamplerFailure ErrorType = "sampler_failure"
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates invalid input data
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeMethodNotAllowed indicates an unsupported HTTP method
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeExternal indicates a storage or other external failure
	ErrorTypeExternal ErrorType = "external"
)

// AppError is the base error type for application errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// InvalidConfigurationf creates an invalid configuration error with formatting
func InvalidConfigurationf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeInvalidConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// DegenerateFieldf creates a degenerate field error with formatting
func DegenerateFieldf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeDegenerateField,
		Message: fmt.Sprintf(format, args...),
	}
}

// SamplerFailuref creates a sampler failure error with formatting
func SamplerFailuref(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeSamplerFailure,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapSamplerFailure wraps an error as a sampler failure
func WrapSamplerFailure(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeSamplerFailure,
		Message: message,
		Err:     err,
	}
}

// NotFoundf creates a not found error with formatting
func NotFoundf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a validation error
func Validation(message string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Err:     err,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// MethodNotAllowed creates a method not allowed error
func MethodNotAllowed(method string) error {
	return &AppError{
		Type:    ErrorTypeMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed", method),
	}
}

// WrapExternal wraps an error as an external failure
func WrapExternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Is reports whether err carries the given error type.
func Is(err error, errorType ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == errorType
}
