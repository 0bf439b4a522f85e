// Package tuimsg holds the messages exchanged between the TUI scenes and the
// root model.
package tuimsg

import (
	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// CalculateRequestedMsg asks the root model to run a batch with Config
type CalculateRequestedMsg struct {
	Config *domain.SimulationConfig
	// Adjustments describes inputs that were clamped into range
	Adjustments []string
}

// SimulationCompleteMsg carries the summary of a finished batch
type SimulationCompleteMsg struct {
	Summary *analysis.Summary
	Err     error
}
