package compare

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/config"
	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// stubEvaluate derives a summary from the inputs: every $1 of monthly rent
// above 1600 adds $100 to the median buy value, and households starting
// with $50,000 or more buy twice as often
func stubEvaluate(seeds *[]int64) EvaluateFunc {
	return func(_ context.Context, cfg *domain.SimulationConfig) (*analysis.Summary, error) {
		if seeds != nil {
			*seeds = append(*seeds, *cfg.Simulation.Seed)
		}
		buyers := 4
		if cfg.Household.InitialSavings.GreaterThanOrEqual(decimal.NewFromInt(50000)) {
			buyers = 8
		}
		buy := decimal.NewFromInt(300000).Add(cfg.Household.MonthlyRent.Sub(decimal.NewFromInt(1600)).Mul(decimal.NewFromInt(100)))
		rent := decimal.NewFromInt(290000)
		return &analysis.Summary{
			Scenarios:     10,
			BuyScenarios:  buyers,
			RentScenarios: 10 - buyers,
			MedianBuy:     buy,
			MedianRent:    rent,
			MedianReturn:  buy.Sub(rent),
			ByPurchaseYear: []analysis.YearSummary{
				{Year: 1, Scenarios: buyers / 4},
				{Year: 3, Scenarios: buyers - buyers/4},
			},
		}, nil
	}
}

func testEngine(seeds *[]int64) *CompareEngine {
	ce := NewCompareEngine()
	ce.Evaluate = stubEvaluate(seeds)
	return ce
}

func baseConfig() *domain.SimulationConfig {
	cfg := config.DefaultConfiguration()
	cfg.Simulation.NumScenarios = 10
	seed := int64(21)
	cfg.Simulation.Seed = &seed
	return cfg
}

func TestMetricsCalculator(t *testing.T) {
	mc := NewMetricsCalculator()
	summary, err := stubEvaluate(nil)(context.Background(), baseConfig())
	require.NoError(t, err)

	base := mc.CalculateMetrics("base", summary)
	assert.Equal(t, "base", base.ScenarioName)
	assert.Equal(t, 10, base.Scenarios)
	assert.InDelta(t, 0.4, base.BuyShare, 1e-9)
	assert.True(t, base.MedianReturn.Equal(decimal.NewFromInt(10000)))
	// buyers by year {1: 1, 3: 3}, so the second of four buyers bought in year 3
	assert.Equal(t, 3, base.MedianPurchaseYear)

	alt := base
	alt.MedianReturn = decimal.NewFromInt(4000)
	alt.BuyShare = 0.7
	alt.MedianBuy = decimal.NewFromInt(294000)
	alt = mc.CalculateComparison(alt, base)
	assert.True(t, alt.ReturnDiffFromBase.Equal(decimal.NewFromInt(-6000)))
	assert.InDelta(t, 0.3, alt.BuyShareDiffFromBase, 1e-9)
	assert.True(t, alt.MedianBuyDiffFromBase.Equal(decimal.NewFromInt(-6000)))

	none := mc.CalculateMetrics("none", &analysis.Summary{Scenarios: 5})
	assert.Equal(t, 0, none.MedianPurchaseYear)
	assert.Zero(t, none.BuyShare)
}

func TestCompareEngine_Templates(t *testing.T) {
	var seeds []int64
	ce := testEngine(&seeds)

	set, err := ce.Compare(context.Background(), baseConfig(), CompareOptions{
		BaseScenarioName: "household",
		Templates:        []string{"rent_up_10pct", "deposit_plus_50k", "rates_up_1pt"},
	})
	require.NoError(t, err)

	assert.Equal(t, "household", set.BaseScenarioName)
	assert.Equal(t, int64(21), set.Seed)
	assert.Equal(t, []int64{21, 21, 21, 21}, seeds)
	require.Len(t, set.AlternativeResults, 3)

	rent := set.AlternativeResults[0]
	assert.Equal(t, "rent_up_10pct", rent.ScenarioName)
	assert.Equal(t, "Monthly rent 10% higher", rent.Description)
	assert.True(t, rent.ReturnDiffFromBase.Equal(decimal.NewFromInt(16000)), rent.ReturnDiffFromBase.String())

	deposit := set.AlternativeResults[1]
	assert.InDelta(t, 0.4, deposit.BuyShareDiffFromBase, 1e-9)
	assert.True(t, deposit.ReturnDiffFromBase.IsZero())

	assert.True(t, set.AlternativeResults[2].ReturnDiffFromBase.IsZero())

	require.Len(t, set.Recommendations, 2)
	assert.Equal(t, "Best return: rent_up_10pct improves the median return of buying by $16,000", set.Recommendations[0])
	assert.Equal(t, "Most buyers: deposit_plus_50k lets 80.0% of households buy (base 40.0%)", set.Recommendations[1])
}

func TestCompareEngine_FreshSeedShared(t *testing.T) {
	var seeds []int64
	ce := testEngine(&seeds)

	base := baseConfig()
	base.Simulation.Seed = nil
	_, err := ce.Compare(context.Background(), base, CompareOptions{Templates: []string{"hot_market"}})
	require.NoError(t, err)

	require.Len(t, seeds, 2)
	assert.Equal(t, seeds[0], seeds[1])
	assert.Nil(t, base.Simulation.Seed, "the caller's configuration is untouched")
}

func TestCompareEngine_VerdictFlip(t *testing.T) {
	ce := testEngine(nil)

	renting := baseConfig()
	renting.Household.MonthlyRent = decimal.NewFromInt(1400)

	set, err := ce.CompareScenarios(context.Background(),
		NamedConfig{Config: renting},
		[]NamedConfig{{Name: "pricier rent", Config: baseConfig()}},
	)
	require.NoError(t, err)
	assert.Equal(t, "base", set.BaseScenarioName)
	assert.True(t, set.BaseResult.MedianReturn.IsNegative())
	assert.Contains(t, set.Recommendations, "Verdict flips: buying beats renting under pricier rent")

	set, err = ce.CompareScenarios(context.Background(),
		NamedConfig{Name: "today", Config: baseConfig()},
		[]NamedConfig{{Name: "cheap rent", Config: renting}},
	)
	require.NoError(t, err)
	assert.Contains(t, set.Recommendations, "Verdict flips: renting beats buying under cheap rent")
}

func TestCompareEngine_Errors(t *testing.T) {
	ce := testEngine(nil)
	ctx := context.Background()

	_, err := ce.Compare(ctx, nil, CompareOptions{})
	assert.Error(t, err)

	_, err = ce.Compare(ctx, baseConfig(), CompareOptions{Templates: []string{"no_such_template"}})
	assert.ErrorContains(t, err, "template no_such_template not found")

	_, err = ce.CompareScenarios(ctx, NamedConfig{}, nil)
	assert.Error(t, err)

	_, err = ce.CompareScenarios(ctx, NamedConfig{Config: baseConfig()}, []NamedConfig{{Name: "empty"}})
	assert.Error(t, err)

	invalid := baseConfig()
	invalid.Household.MonthlyRent = decimal.NewFromInt(-1)
	_, err = ce.CompareScenarios(ctx, NamedConfig{Config: baseConfig()}, []NamedConfig{{Name: "bad", Config: invalid}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	boom := errors.New("boom")
	ce.Evaluate = func(context.Context, *domain.SimulationConfig) (*analysis.Summary, error) { return nil, boom }
	_, err = ce.Compare(ctx, baseConfig(), CompareOptions{})
	assert.ErrorIs(t, err, boom)
}

func TestCompareEngine_Simulates(t *testing.T) {
	cfg := baseConfig()
	cfg.Simulation.HorizonMonths = 12

	set, err := NewCompareEngine().Compare(context.Background(), cfg, CompareOptions{
		BaseScenarioName: "base",
		Templates:        []string{"rates_down_1pt"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, set.BaseResult.Scenarios)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, 10, set.AlternativeResults[0].Scenarios)
	assert.NotNil(t, set.BaseResult.Summary)
}

func TestFormatters(t *testing.T) {
	set, err := testEngine(nil).Compare(context.Background(), baseConfig(), CompareOptions{
		BaseScenarioName: "household",
		Templates:        []string{"rent_up_10pct", "deposit_plus_50k"},
	})
	require.NoError(t, err)
	set.ConfigPath = "household.yaml"

	table := (&TableFormatter{}).Format(set)
	assert.Contains(t, table, "RENT VS BUY SCENARIO COMPARISON")
	assert.Contains(t, table, "Configuration: household.yaml")
	assert.Contains(t, table, "household (base)")
	assert.Contains(t, table, "$300.0K")
	assert.Contains(t, table, "Median return:     +$16,000")
	assert.Contains(t, table, "Buyers:            +40.0 points")
	assert.Contains(t, table, "RECOMMENDATIONS")

	compact := (&TableFormatter{}).FormatCompact(set)
	assert.Equal(t, "Base: household | rent_up_10pct: +$16.0K | deposit_plus_50k: =", compact)

	out, err := (&CSVFormatter{}).Format(set)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Scenarios,Buy Share"))
	assert.True(t, strings.HasPrefix(lines[1], "household,base,10,0.4000,300000.00,290000.00,10000.00,3,"))
	assert.True(t, strings.HasPrefix(lines[3], "deposit_plus_50k,alternative,10,0.8000,"))

	js, err := (&JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, "household", decoded["baseScenarioName"])
	assert.Len(t, decoded["alternativeResults"], 2)
	assert.Contains(t, js, "\n  ")

	compactJS, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, compactJS, "\n")
}

func TestCompareEngine_TransformAlternatives(t *testing.T) {
	ce := testEngine(nil)

	alts, err := ce.TransformAlternatives(baseConfig(), []string{"scale_rent:factor=1.25", "set_horizon:months=24"})
	require.NoError(t, err)
	require.Len(t, alts, 2)
	assert.Equal(t, "scale_rent:factor=1.25", alts[0].Name)
	assert.Equal(t, "Change monthly rent by 25%", alts[0].Description)
	assert.True(t, alts[0].Config.Household.MonthlyRent.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 24, alts[1].Config.Simulation.HorizonMonths)

	_, err = ce.TransformAlternatives(baseConfig(), []string{"scale_rent"})
	assert.Error(t, err)
	_, err = ce.TransformAlternatives(baseConfig(), []string{"adjust_monthly_savings:delta=-5000"})
	assert.Error(t, err)

	set, err := ce.CompareScenarios(context.Background(), NamedConfig{Name: "base", Config: baseConfig()}, alts)
	require.NoError(t, err)
	assert.True(t, set.AlternativeResults[0].ReturnDiffFromBase.Equal(decimal.NewFromInt(40000)))
}
