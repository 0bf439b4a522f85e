// Package analysis reduces a simulation batch to per-scenario outcomes and
// the summary statistics shown by the report surfaces.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultHistogramBins is the number of net value bins used by the reports
const DefaultHistogramBins = 20

// ScenarioOutcome is where a scenario stands at the end of the horizon
type ScenarioOutcome struct {
	ScenarioID    int             `json:"scenarioId"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	NetValue      decimal.Decimal `json:"netValue"`
	PurchaseMonth int             `json:"purchaseMonth"`
	PurchaseYear  int             `json:"purchaseYear"`
	// Status is Buy for every scenario that purchased, Rent otherwise
	Status         domain.HomeStatus `json:"status"`
	PercentileRank float64           `json:"percentileRank"`
	// ComparisonNetValue is NetValue less the median net value of renters
	ComparisonNetValue decimal.Decimal `json:"comparisonNetValue"`
}

// YearSummary is the median outcome of the scenarios that bought in one
// year of the horizon
type YearSummary struct {
	Year           int             `json:"year"`
	Scenarios      int             `json:"scenarios"`
	MedianNetValue decimal.Decimal `json:"medianNetValue"`
}

// HistogramBin counts outcomes by status in [Lower, Upper); the last bin is closed
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Buy   int     `json:"buy"`
	Rent  int     `json:"rent"`
}

// Summary is the report of one simulation batch
type Summary struct {
	HorizonMonths  int                      `json:"horizonMonths"`
	Seed           int64                    `json:"seed"`
	Calibration    domain.CalibrationResult `json:"calibration"`
	Scenarios      int                      `json:"scenarios"`
	BuyScenarios   int                      `json:"buyScenarios"`
	RentScenarios  int                      `json:"rentScenarios"`
	MedianBuy      decimal.Decimal          `json:"medianBuy"`
	MedianRent     decimal.Decimal          `json:"medianRent"`
	MedianReturn   decimal.Decimal          `json:"medianReturn"`
	ByPurchaseYear []YearSummary            `json:"byPurchaseYear"`
	Histogram      []HistogramBin           `json:"histogram"`
	Outcomes       []ScenarioOutcome        `json:"outcomes"`
}

// BuyShare is the fraction of scenarios that purchased
func (s *Summary) BuyShare() float64 {
	if s.Scenarios == 0 {
		return 0
	}
	return float64(s.BuyScenarios) / float64(s.Scenarios)
}

// PurchaseYear maps a purchase month to its 1-based year of the horizon.
// The never-purchased sentinel maps one year past the last purchase year
// when the horizon is a whole number of years.
func PurchaseYear(purchaseMonth int) int {
	return purchaseMonth/12 + 1
}

// Summarize reduces the terminal month of every scenario. Medians over an
// empty group are zero; with no renters, comparisons are against zero.
func Summarize(result *domain.SimulationResult, bins int) (*Summary, error) {
	if result == nil {
		return nil, fmt.Errorf("no simulation result to summarize")
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	final := result.FinalRecords()
	summary := &Summary{
		HorizonMonths: result.HorizonMonths,
		Seed:          result.Seed,
		Calibration:   result.Calibration,
		Scenarios:     len(final),
		Outcomes:      make([]ScenarioOutcome, len(final)),
	}
	if len(final) == 0 {
		return summary, nil
	}

	var buy, rent []decimal.Decimal
	byYear := map[int][]decimal.Decimal{}
	for i, rec := range final {
		outcome := ScenarioOutcome{
			ScenarioID:    rec.ScenarioID,
			PurchasePrice: rec.PurchasePrice,
			NetValue:      rec.NetValue(),
			PurchaseMonth: rec.PurchaseMonth,
			PurchaseYear:  PurchaseYear(rec.PurchaseMonth),
			Status:        domain.StatusRent,
		}
		if rec.HomeStatus.Owned() {
			outcome.Status = domain.StatusBuy
			buy = append(buy, outcome.NetValue)
			byYear[outcome.PurchaseYear] = append(byYear[outcome.PurchaseYear], outcome.NetValue)
		} else {
			rent = append(rent, outcome.NetValue)
		}
		summary.Outcomes[i] = outcome
	}

	summary.BuyScenarios = len(buy)
	summary.RentScenarios = len(rent)
	summary.MedianBuy = Median(buy)
	summary.MedianRent = Median(rent)
	summary.MedianReturn = summary.MedianBuy.Sub(summary.MedianRent)

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		summary.ByPurchaseYear = append(summary.ByPurchaseYear, YearSummary{
			Year:           y,
			Scenarios:      len(byYear[y]),
			MedianNetValue: Median(byYear[y]),
		})
	}

	rankOutcomes(summary.Outcomes)
	for i := range summary.Outcomes {
		summary.Outcomes[i].ComparisonNetValue = summary.Outcomes[i].NetValue.Sub(summary.MedianRent)
	}
	summary.Histogram = Histogram(summary.Outcomes, bins)

	return summary, nil
}

// Median of a set of amounts; the mean of the two middle values for an even
// count and zero for an empty set
func Median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// rankOutcomes sets each outcome's percentile rank: its 1-based position by
// net value divided by the count, with ties sharing their average position
func rankOutcomes(outcomes []ScenarioOutcome) {
	order := make([]int, len(outcomes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return outcomes[order[a]].NetValue.LessThan(outcomes[order[b]].NetValue)
	})

	n := float64(len(outcomes))
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && outcomes[order[end]].NetValue.Equal(outcomes[order[start]].NetValue) {
			end++
		}
		// positions start+1 .. end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			outcomes[order[k]].PercentileRank = avg / n
		}
		start = end
	}
}

// Histogram splits the outcomes' net values into equal-width bins
func Histogram(outcomes []ScenarioOutcome, bins int) []HistogramBin {
	if len(outcomes) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, o := range outcomes {
		v := o.NetValue.InexactFloat64()
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		bins = 1
	}

	width := (hi - lo) / float64(bins)
	hist := make([]HistogramBin, bins)
	for i := range hist {
		hist[i].Lower = lo + float64(i)*width
		hist[i].Upper = lo + float64(i+1)*width
	}
	hist[bins-1].Upper = hi

	for _, o := range outcomes {
		i := bins - 1
		if width > 0 {
			i = int((o.NetValue.InexactFloat64() - lo) / width)
			if i >= bins {
				i = bins - 1
			}
		}
		if o.Status == domain.StatusBuy {
			hist[i].Buy++
		} else {
			hist[i].Rent++
		}
	}
	return hist
}
