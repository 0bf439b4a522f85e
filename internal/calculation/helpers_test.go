package calculation

import (
	"math/rand"
	"testing"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func bracket(bound int64, rate float64) domain.RateBracket {
	return domain.RateBracket{LTVBound: decimal.NewFromInt(bound), Rate: decimal.NewFromFloat(rate)}
}

// lmiBrackets is the insurance table of the reference household, deliberately unsorted
func lmiBrackets() []domain.RateBracket {
	return []domain.RateBracket{
		bracket(100, 1.0),
		bracket(95, 0.0399),
		bracket(94, 0.0376),
		bracket(93, 0.034),
		bracket(92, 0.0324),
		bracket(91, 0.0309),
		bracket(90, 0.0221),
		bracket(89, 0.0184),
		bracket(88, 0.0143),
		bracket(87, 0.0134),
		bracket(86, 0.0119),
		bracket(85, 0.0108),
		bracket(84, 0.0092),
		bracket(83, 0.0086),
		bracket(82, 0.0073),
		bracket(81, 0.0072),
		bracket(80, 0),
	}
}

func testTable(t *testing.T) *LTVRateTable {
	t.Helper()
	table, err := NewLTVRateTable(lmiBrackets())
	require.NoError(t, err)
	return table
}

func testParams() ScenarioParams {
	return ScenarioParams{
		HorizonMonths:          60,
		InitialSavings:         decimal.NewFromInt(32500),
		MonthlySavings:         decimal.NewFromInt(3000),
		MonthlyRent:            decimal.NewFromInt(1600),
		MonthlyAdditionalCosts: decimal.NewFromInt(400),
		PurchaseCosts:          decimal.NewFromInt(2000),
		AnnualInterestRate:     decimal.NewFromFloat(0.0299),
		AnnualSavingsRate:      decimal.NewFromFloat(0.012),
		LoanTermMonths:         DefaultLoanTermMonths,
		Appreciation:           domain.Appreciation{Mean: 0.014, StdDev: 0.0285, PeriodsPerDraw: 4},
	}
}

func testConfig() *domain.SimulationConfig {
	seed := int64(42)
	return &domain.SimulationConfig{
		Simulation: domain.SimulationSettings{
			HorizonMonths:  60,
			NumScenarios:   50,
			PriceMin:       decimal.NewFromInt(500000),
			PriceMax:       decimal.NewFromInt(650000),
			PriceIncrement: decimal.NewFromInt(5000),
			Seed:           &seed,
		},
		Household: domain.Household{
			InitialSavings:         decimal.NewFromInt(60000),
			MonthlySavings:         decimal.NewFromInt(3000),
			MonthlyRent:            decimal.NewFromInt(1600),
			MonthlyAdditionalCosts: decimal.NewFromInt(400),
			PurchaseCosts:          decimal.NewFromInt(2000),
		},
		Rates: domain.Rates{
			AnnualInterestRate: decimal.NewFromFloat(0.0299),
			AnnualSavingsRate:  decimal.NewFromFloat(0.012),
		},
		Calibration:  domain.CalibrationSettings{TargetConfidence: 0.85, ProbabilityGridStep: 0.005},
		Appreciation: domain.Appreciation{Mean: 0.014, StdDev: 0.0285, PeriodsPerDraw: 4},
		RateTable:    lmiBrackets(),
	}
}

func newSim(t *testing.T, price int64, params ScenarioParams, buyProbability float64, seed int64) *ScenarioSimulator {
	t.Helper()
	odds := domain.CalibrationResult{BuyProbability: buyProbability, RentProbability: 1 - buyProbability}
	sim, err := NewScenarioSimulator(0, decimal.NewFromInt(price), params, testTable(t), odds, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return sim
}
