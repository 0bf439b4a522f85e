package calculation

import (
	"math"

	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// ProbabilityGrid returns the candidate probabilities 0, step, 2*step, ..., 1.
// Values are computed as i*step rather than by accumulation so the last entry
// is exactly 1.
func ProbabilityGrid(step float64) ([]float64, error) {
	if math.IsNaN(step) || step <= 0 || step > 1 {
		return nil, domain.NewConfigurationError("probability_grid_step", "must be in (0, 1], got %v", step)
	}
	n := int(math.Round(1 / step))
	if math.Abs(float64(n)*step-1) > 1e-9 {
		return nil, domain.NewConfigurationError("probability_grid_step", "%v does not divide 1 evenly", step)
	}

	grid := make([]float64, n+1)
	for i := range grid {
		grid[i] = float64(i) * step
	}
	grid[n] = 1
	return grid, nil
}

// AtLeastOneBuy is the probability of one or more buy decisions in horizon
// independent monthly draws with buy probability p.
func AtLeastOneBuy(p float64, horizonMonths int) float64 {
	return 1 - math.Pow(1-p, float64(horizonMonths))
}

// Calibrate picks the smallest grid probability p for which at least one buy
// decision over the horizon happens with probability targetConfidence or more.
func Calibrate(horizonMonths int, targetConfidence float64, grid []float64) (domain.CalibrationResult, error) {
	if horizonMonths <= 0 {
		return domain.CalibrationResult{}, domain.NewConfigurationError("horizon_months", "must be positive, got %d", horizonMonths)
	}
	if math.IsNaN(targetConfidence) || targetConfidence <= 0 || targetConfidence > 1 {
		return domain.CalibrationResult{}, domain.NewConfigurationError("target_confidence", "must be in (0, 1], got %v", targetConfidence)
	}
	if err := validateGrid(grid); err != nil {
		return domain.CalibrationResult{}, err
	}

	// Compare the chance of never buying against the allowed miss: 1-(1-p)^h
	// rounds to 1 long before p does, which would end the search early for a
	// target of 1.
	miss := 1 - targetConfidence
	for _, p := range grid {
		if math.Pow(1-p, float64(horizonMonths)) <= miss {
			return domain.CalibrationResult{BuyProbability: p, RentProbability: 1 - p}, nil
		}
	}
	// unreachable: the grid ends at 1, for which the miss chance is 0
	return domain.CalibrationResult{BuyProbability: 1}, nil
}

func validateGrid(grid []float64) error {
	if len(grid) == 0 {
		return domain.NewConfigurationError("probability_grid", "is empty")
	}
	for i, p := range grid {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return domain.NewConfigurationError("probability_grid", "value %v at %d is outside [0, 1]", p, i)
		}
		if i > 0 && p <= grid[i-1] {
			return domain.NewConfigurationError("probability_grid", "must be strictly ascending at %d", i)
		}
	}
	if grid[len(grid)-1] != 1 {
		return domain.NewConfigurationError("probability_grid", "must end at 1, ends at %v", grid[len(grid)-1])
	}
	return nil
}
