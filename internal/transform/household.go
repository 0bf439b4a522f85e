package transform

import (
	"fmt"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleRent multiplies the monthly rent by Factor
type ScaleRent struct {
	Factor decimal.Decimal // 1.1 raises the rent by 10%
}

func (sr *ScaleRent) Name() string {
	return "scale_rent"
}

func (sr *ScaleRent) Description() string {
	change := sr.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Change monthly rent by %s%%", change.StringFixed(0))
}

func (sr *ScaleRent) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(sr.Name(), base); err != nil {
		return err
	}
	if sr.Factor.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("factor cannot be negative, got %s", sr.Factor), nil)
	}
	return nil
}

func (sr *ScaleRent) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Household.MonthlyRent = base.Household.MonthlyRent.Mul(sr.Factor).Round(2)
	return modified, nil
}

// AdjustMonthlySavings adds Delta (which may be negative) to the monthly savings
type AdjustMonthlySavings struct {
	Delta decimal.Decimal
}

func (am *AdjustMonthlySavings) Name() string {
	return "adjust_monthly_savings"
}

func (am *AdjustMonthlySavings) Description() string {
	return fmt.Sprintf("Change monthly savings by %s", signedAmount(am.Delta))
}

func (am *AdjustMonthlySavings) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(am.Name(), base); err != nil {
		return err
	}
	if base.Household.MonthlySavings.Add(am.Delta).IsNegative() {
		return NewTransformError(am.Name(), "validate",
			fmt.Sprintf("monthly savings of %s cannot drop by %s", base.Household.MonthlySavings, am.Delta.Neg()), nil)
	}
	return nil
}

func (am *AdjustMonthlySavings) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Household.MonthlySavings = base.Household.MonthlySavings.Add(am.Delta)
	return modified, nil
}

// AdjustInitialSavings adds Delta (which may be negative) to the starting savings
type AdjustInitialSavings struct {
	Delta decimal.Decimal
}

func (ai *AdjustInitialSavings) Name() string {
	return "adjust_initial_savings"
}

func (ai *AdjustInitialSavings) Description() string {
	return fmt.Sprintf("Change initial savings by %s", signedAmount(ai.Delta))
}

func (ai *AdjustInitialSavings) Validate(base *domain.SimulationConfig) error {
	if err := requireBase(ai.Name(), base); err != nil {
		return err
	}
	if base.Household.InitialSavings.Add(ai.Delta).IsNegative() {
		return NewTransformError(ai.Name(), "validate",
			fmt.Sprintf("initial savings of %s cannot drop by %s", base.Household.InitialSavings, ai.Delta.Neg()), nil)
	}
	return nil
}

func (ai *AdjustInitialSavings) Apply(base *domain.SimulationConfig) (*domain.SimulationConfig, error) {
	modified := base.DeepCopy()
	modified.Household.InitialSavings = base.Household.InitialSavings.Add(ai.Delta)
	return modified, nil
}

func signedAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(0)
	}
	return "+$" + d.StringFixed(0)
}
