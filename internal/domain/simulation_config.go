package domain

import (
	"github.com/shopspring/decimal"
)

// SimulationConfig is the complete input of one batch run
type SimulationConfig struct {
	Simulation   SimulationSettings  `yaml:"simulation" json:"simulation"`
	Household    Household           `yaml:"household" json:"household"`
	Rates        Rates               `yaml:"rates" json:"rates"`
	Calibration  CalibrationSettings `yaml:"calibration" json:"calibration"`
	Appreciation Appreciation        `yaml:"appreciation" json:"appreciation"`
	RateTable    []RateBracket       `yaml:"rate_table" json:"rate_table"`
}

// SimulationSettings controls the horizon and the set of scenarios
type SimulationSettings struct {
	HorizonMonths  int             `yaml:"horizon_months" json:"horizon_months"`
	NumScenarios   int             `yaml:"num_scenarios" json:"num_scenarios"`
	PriceMin       decimal.Decimal `yaml:"price_min" json:"price_min"`
	PriceMax       decimal.Decimal `yaml:"price_max" json:"price_max"`
	PriceIncrement decimal.Decimal `yaml:"price_increment" json:"price_increment"`
	// PurchasePrices, when set, replaces sampling from the price range.
	// Duplicates are repeated trials.
	PurchasePrices []decimal.Decimal `yaml:"purchase_prices,omitempty" json:"purchase_prices,omitempty"`
	Seed           *int64            `yaml:"seed,omitempty" json:"seed,omitempty"`
	Workers        int               `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// Household holds the cash flows of the household (all monthly unless noted)
type Household struct {
	InitialSavings         decimal.Decimal `yaml:"initial_savings" json:"initial_savings"`
	MonthlySavings         decimal.Decimal `yaml:"monthly_savings" json:"monthly_savings"`
	MonthlyRent            decimal.Decimal `yaml:"monthly_rent" json:"monthly_rent"`
	MonthlyAdditionalCosts decimal.Decimal `yaml:"monthly_additional_costs" json:"monthly_additional_costs"`
	PurchaseCosts          decimal.Decimal `yaml:"purchase_costs" json:"purchase_costs"` // one-off, at purchase
}

// Rates holds annual interest rates as fractions (0.0299 for 2.99%)
type Rates struct {
	AnnualInterestRate decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	AnnualSavingsRate  decimal.Decimal `yaml:"annual_savings_rate" json:"annual_savings_rate"`
	LoanTermMonths     int             `yaml:"loan_term_months,omitempty" json:"loan_term_months,omitempty"`
}

// CalibrationSettings drives the buy-probability grid search
type CalibrationSettings struct {
	TargetConfidence    float64 `yaml:"target_confidence" json:"target_confidence"`
	ProbabilityGridStep float64 `yaml:"probability_grid_step" json:"probability_grid_step"`
}

// Appreciation describes the monthly home price growth draw.
// Each month the price grows by Normal(Mean, StdDev) / PeriodsPerDraw.
type Appreciation struct {
	Mean           float64 `yaml:"mean" json:"mean"`
	StdDev         float64 `yaml:"std_dev" json:"std_dev"`
	PeriodsPerDraw int     `yaml:"periods_per_draw" json:"periods_per_draw"`
}

// DeepCopy returns a copy that shares no slices or pointers with c
func (c *SimulationConfig) DeepCopy() *SimulationConfig {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Simulation.PurchasePrices != nil {
		cp.Simulation.PurchasePrices = append([]decimal.Decimal(nil), c.Simulation.PurchasePrices...)
	}
	if c.Simulation.Seed != nil {
		seed := *c.Simulation.Seed
		cp.Simulation.Seed = &seed
	}
	if c.RateTable != nil {
		cp.RateTable = append([]RateBracket(nil), c.RateTable...)
	}
	return &cp
}
