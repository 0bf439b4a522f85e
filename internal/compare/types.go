package compare

import (
	"fmt"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the headline metrics of one configuration
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Description  string            `json:"description,omitempty"`
	Summary      *analysis.Summary `json:"-"`

	// Key Metrics
	Scenarios    int             `json:"scenarios"`
	BuyShare     float64         `json:"buyShare"`
	MedianBuy    decimal.Decimal `json:"medianBuy"`
	MedianRent   decimal.Decimal `json:"medianRent"`
	MedianReturn decimal.Decimal `json:"medianReturn"`
	// MedianPurchaseYear is the median purchase year among buyers; zero
	// when nobody bought
	MedianPurchaseYear int `json:"medianPurchaseYear"`

	// Comparison to Base
	ReturnDiffFromBase    decimal.Decimal `json:"returnDiffFromBase"`
	BuyShareDiffFromBase  float64         `json:"buyShareDiffFromBase"`
	MedianBuyDiffFromBase decimal.Decimal `json:"medianBuyDiffFromBase"`
}

// ComparisonSet is a base configuration and its alternatives, all simulated
// with the same seed
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	Seed               int64              `json:"seed"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts comparison metrics from batch summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the headline metrics of one summary
func (mc *MetricsCalculator) CalculateMetrics(name string, summary *analysis.Summary) ComparisonResult {
	return ComparisonResult{
		ScenarioName:       name,
		Summary:            summary,
		Scenarios:          summary.Scenarios,
		BuyShare:           summary.BuyShare(),
		MedianBuy:          summary.MedianBuy,
		MedianRent:         summary.MedianRent,
		MedianReturn:       summary.MedianReturn,
		MedianPurchaseYear: mc.medianPurchaseYear(summary),
	}
}

// CalculateComparison fills the deltas of scenario against base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ReturnDiffFromBase = scenario.MedianReturn.Sub(base.MedianReturn)
	scenario.BuyShareDiffFromBase = scenario.BuyShare - base.BuyShare
	scenario.MedianBuyDiffFromBase = scenario.MedianBuy.Sub(base.MedianBuy)
	return scenario
}

// medianPurchaseYear walks the per-year buyer counts to the middle buyer
func (mc *MetricsCalculator) medianPurchaseYear(summary *analysis.Summary) int {
	if summary.BuyScenarios == 0 {
		return 0
	}
	middle := (summary.BuyScenarios + 1) / 2
	seen := 0
	for _, y := range summary.ByPurchaseYear {
		seen += y.Scenarios
		if seen >= middle {
			return y.Year
		}
	}
	return 0
}

// GenerateRecommendations points out the alternatives that stand out
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Best median return of buying over renting
	bestReturn := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MedianReturn.GreaterThan(bestReturn.MedianReturn) {
			bestReturn = alt
		}
	}
	if bestReturn != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best return: %s improves the median return of buying by %s",
			bestReturn.ScenarioName, output.FormatCurrency(bestReturn.ReturnDiffFromBase)))
	}

	// Highest share of households that buy
	mostBuyers := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BuyShare > mostBuyers.BuyShare {
			mostBuyers = alt
		}
	}
	if mostBuyers != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Most buyers: %s lets %s of households buy (base %s)",
			mostBuyers.ScenarioName, output.FormatPercentage(mostBuyers.BuyShare), output.FormatPercentage(base.BuyShare)))
	}

	// Alternatives that flip the verdict
	for _, alt := range compSet.AlternativeResults {
		switch {
		case base.MedianReturn.IsNegative() && !alt.MedianReturn.IsNegative():
			recommendations = append(recommendations, fmt.Sprintf(
				"Verdict flips: buying beats renting under %s", alt.ScenarioName))
		case !base.MedianReturn.IsNegative() && alt.MedianReturn.IsNegative():
			recommendations = append(recommendations, fmt.Sprintf(
				"Verdict flips: renting beats buying under %s", alt.ScenarioName))
		}
	}

	return recommendations
}
