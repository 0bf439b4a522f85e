package calculation

import (
	"math/rand"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// SamplePurchasePrices draws n prices uniformly from min, min+increment, ...
// up to and including the last step not above max.
func SamplePurchasePrices(rng *rand.Rand, min, max, increment decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, domain.NewConfigurationError("num_scenarios", "must be positive, got %d", n)
	}
	if !min.IsPositive() {
		return nil, domain.NewConfigurationError("price_min", "must be positive, got %s", min)
	}
	if !increment.IsPositive() {
		return nil, domain.NewConfigurationError("price_increment", "must be positive, got %s", increment)
	}
	if max.LessThan(min) {
		return nil, domain.NewConfigurationError("price_max", "%s is below price_min %s", max, min)
	}

	steps := max.Sub(min).Div(increment).Floor().IntPart() + 1
	prices := make([]decimal.Decimal, n)
	for i := range prices {
		k := rng.Int63n(steps)
		prices[i] = min.Add(increment.Mul(decimal.NewFromInt(k)))
	}
	return prices, nil
}
