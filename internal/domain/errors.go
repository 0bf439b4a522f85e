package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration classifies invalid or out-of-domain input
	ErrConfiguration = errors.New("configuration error")
	// ErrNumericDegeneracy classifies arithmetic that would produce NaN or an infinity
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// ConfigurationError reports an input rejected before (or instead of) simulating
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

// NewConfigurationError builds a ConfigurationError with a formatted message
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// Is makes every ConfigurationError match ErrConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
