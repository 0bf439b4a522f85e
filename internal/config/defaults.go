package config

import (
	"github.com/rgehrsitz/rentbuy/internal/calculation"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// AbsoluteMinPrice is the lowest purchase price the form accepts
var AbsoluteMinPrice = decimal.NewFromInt(500000)

// DefaultRateTable is the lender's mortgage insurance schedule, as a fraction
// of the price, by loan-to-value bound. The 100% bracket prices any shortfall
// above 95% out of reach.
func DefaultRateTable() []domain.RateBracket {
	rates := []struct {
		bound int64
		rate  string
	}{
		{80, "0"},
		{81, "0.0072"},
		{82, "0.0073"},
		{83, "0.0086"},
		{84, "0.0092"},
		{85, "0.0108"},
		{86, "0.0119"},
		{87, "0.0134"},
		{88, "0.0143"},
		{89, "0.0184"},
		{90, "0.0221"},
		{91, "0.0309"},
		{92, "0.0324"},
		{93, "0.034"},
		{94, "0.0376"},
		{95, "0.0399"},
		{100, "1"},
	}

	table := make([]domain.RateBracket, len(rates))
	for i, r := range rates {
		table[i] = domain.RateBracket{LTVBound: decimal.NewFromInt(r.bound), Rate: dec(r.rate)}
	}
	return table
}

// DefaultConfiguration returns the reference household: a five year horizon,
// 2000 scenarios priced between 600000 and 650000.
func DefaultConfiguration() *domain.SimulationConfig {
	return &domain.SimulationConfig{
		Simulation: domain.SimulationSettings{
			HorizonMonths:  60,
			NumScenarios:   2000,
			PriceMin:       decimal.NewFromInt(600000),
			PriceMax:       decimal.NewFromInt(650000),
			PriceIncrement: decimal.NewFromInt(5000),
		},
		Household: domain.Household{
			InitialSavings:         decimal.NewFromInt(32500),
			MonthlySavings:         decimal.NewFromInt(3000),
			MonthlyRent:            decimal.NewFromInt(1600),
			MonthlyAdditionalCosts: decimal.NewFromInt(1200).Div(decimal.NewFromInt(3)),
			PurchaseCosts:          decimal.NewFromInt(2000),
		},
		Rates: domain.Rates{
			AnnualInterestRate: dec("0.0299"),
			AnnualSavingsRate:  dec("0.012"),
			LoanTermMonths:     calculation.DefaultLoanTermMonths,
		},
		Calibration: domain.CalibrationSettings{
			TargetConfidence:    0.85,
			ProbabilityGridStep: 0.005,
		},
		Appreciation: domain.Appreciation{
			Mean:           0.014,
			StdDev:         0.0285,
			PeriodsPerDraw: 4,
		},
		RateTable: DefaultRateTable(),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
