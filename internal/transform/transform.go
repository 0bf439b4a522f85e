package transform

import (
	"fmt"

	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// ConfigTransform is a composable edit of a simulation configuration. Each
// transform returns a modified copy and leaves its input untouched, so a
// base configuration can seed any number of alternatives.
type ConfigTransform interface {
	// Apply returns a modified copy of base
	Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error)

	// Name returns a short identifier (e.g., "adjust_interest_rate")
	Name() string

	// Description returns a human-readable summary of the edit
	Description() string

	// Validate checks the parameters against base without applying them
	Validate(base *domain.SimulationConfig) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one
func ApplyTransforms(base *domain.SimulationConfig, transforms []ConfigTransform) (*domain.SimulationConfig, error) {
	if base == nil {
		return nil, fmt.Errorf("base configuration cannot be nil")
	}

	current := base.DeepCopy()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a TransformError
func NewTransformError(name, operation, reason string, err error) *TransformError {
	return &TransformError{
		TransformName: name,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireBase(name string, base *domain.SimulationConfig) error {
	if base == nil {
		return NewTransformError(name, "validate", "base configuration cannot be nil", nil)
	}
	return nil
}
