package analysis

import (
	"context"

	"github.com/rgehrsitz/rentbuy/internal/calculation"
	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// RunBatch simulates cfg and summarizes the result with the default
// histogram resolution
func RunBatch(ctx context.Context, cfg *domain.SimulationConfig, opts ...calculation.RunnerOption) (*Summary, error) {
	runner, err := calculation.NewSimulationRunner(cfg, opts...)
	if err != nil {
		return nil, err
	}
	result, err := runner.Simulate(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(result, DefaultHistogramBins)
}
