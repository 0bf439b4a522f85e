package transform

import (
	"fmt"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustInterestRate shifts the annual mortgage rate by Delta (0.01 is one
// percentage point)
type AdjustInterestRate struct {
	Delta decimal.Decimal
}

func (ar *AdjustInterestRate) Name() string {
	return "adjust_interest_rate"
}

func (ar *AdjustInterestRate) Description() string {
	return fmt.Sprintf("Change the mortgage rate by %s percentage points", signedPoints(ar.Delta))
}

func (ar *AdjustInterestRate) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	if base.Rates.AnnualInterestRate.Add(ar.Delta).IsNegative() {
		return NewTransformError(ar.Name(), "validate", "mortgage rate cannot go negative", nil)
	}
	return nil
}

func (ar *AdjustInterestRate) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Rates.AnnualInterestRate = base.Rates.AnnualInterestRate.Add(ar.Delta)
	return modified, nil
}

// AdjustSavingsRate shifts the annual savings rate by Delta
type AdjustSavingsRate struct {
	Delta decimal.Decimal
}

func (as *AdjustSavingsRate) Name() string {
	return "adjust_savings_rate"
}

func (as *AdjustSavingsRate) Description() string {
	return fmt.Sprintf("Change the savings rate by %s percentage points", signedPoints(as.Delta))
}

func (as *AdjustSavingsRate) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(as.Name(), base); err != nil {
		return err
	}
	if base.Rates.AnnualSavingsRate.Add(as.Delta).IsNegative() {
		return NewTransformError(as.Name(), "validate", "savings rate cannot go negative", nil)
	}
	return nil
}

func (as *AdjustSavingsRate) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Rates.AnnualSavingsRate = base.Rates.AnnualSavingsRate.Add(as.Delta)
	return modified, nil
}

// SetAppreciation replaces the home price growth distribution
type SetAppreciation struct {
	Mean   float64
	StdDev float64
}

func (sa *SetAppreciation) Name() string {
	return "set_appreciation"
}

func (sa *SetAppreciation) Description() string {
	return fmt.Sprintf("Set home price growth to mean %.2f%%, std dev %.2f%%", sa.Mean*100, sa.StdDev*100)
}

func (sa *SetAppreciation) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(sa.Name(), base); err != nil {
		return err
	}
	if sa.StdDev < 0 {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("std dev cannot be negative, got %g", sa.StdDev), nil)
	}
	return nil
}

func (sa *SetAppreciation) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Appreciation.Mean = sa.Mean
	modified.Appreciation.StdDev = sa.StdDev
	return modified, nil
}

// SetHorizon replaces the number of simulated months
type SetHorizon struct {
	Months int
}

func (sh *SetHorizon) Name() string {
	return "set_horizon"
}

func (sh *SetHorizon) Description() string {
	return fmt.Sprintf("Simulate %d months", sh.Months)
}

func (sh *SetHorizon) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(sh.Name(), base); err != nil {
		return err
	}
	if sh.Months < 1 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("horizon must be at least one month, got %d", sh.Months), nil)
	}
	return nil
}

func (sh *SetHorizon) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Simulation.HorizonMonths = sh.Months
	return modified, nil
}

// SetPriceRange replaces the sampled price range and drops any explicit
// price list
type SetPriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (sp *SetPriceRange) Name() string {
	return "set_price_range"
}

func (sp *SetPriceRange) Description() string {
	return fmt.Sprintf("Sample purchase prices from $%s to $%s", sp.Min.StringFixed(0), sp.Max.StringFixed(0))
}

func (sp *SetPriceRange) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(sp.Name(), base); err != nil {
		return err
	}
	if !sp.Min.IsPositive() || sp.Max.LessThan(sp.Min) {
		return NewTransformError(sp.Name(), "validate",
			fmt.Sprintf("invalid price range %s to %s", sp.Min, sp.Max), nil)
	}
	return nil
}

func (sp *SetPriceRange) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Simulation.PriceMin = sp.Min
	modified.Simulation.PriceMax = sp.Max
	modified.Simulation.PurchasePrices = nil
	return modified, nil
}

func signedPoints(d decimal.Decimal) string {
	pts := d.Mul(decimal.NewFromInt(100)).StringFixed(2)
	if !d.IsNegative() {
		return "+" + pts
	}
	return pts
}
