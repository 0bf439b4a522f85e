package analysis

import (
	"testing"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// finalRecord builds a terminal-month record whose net value is savings
// plus home price less loan
func finalRecord(id, horizon int, status domain.HomeStatus, purchaseMonth int, home, savings, loan int64) domain.MonthlyRecord {
	return domain.MonthlyRecord{
		ScenarioID:     id,
		Month:          horizon,
		PurchasePrice:  d(600000),
		HomePrice:      d(home),
		SavingsBalance: d(savings),
		LoanAmount:     d(loan),
		PurchaseMonth:  purchaseMonth,
		HomeStatus:     status,
	}
}

func testResult() *domain.SimulationResult {
	const horizon = 60
	return &domain.SimulationResult{
		HorizonMonths: horizon,
		NumScenarios:  6,
		Seed:          42,
		Calibration:   domain.CalibrationResult{BuyProbability: 0.035, RentProbability: 0.965},
		Records: []domain.MonthlyRecord{
			{ScenarioID: 0, Month: 0, HomeStatus: domain.StatusRent, SavingsBalance: d(35000), PurchaseMonth: 61},
			finalRecord(0, horizon, domain.StatusRent, 61, 0, 200000, 0),
			finalRecord(1, horizon, domain.StatusRent, 61, 0, 220000, 0),
			finalRecord(2, horizon, domain.StatusMortgage, 5, 700000, 90000, 500000),
			finalRecord(3, horizon, domain.StatusMortgage, 15, 650000, 60000, 450000),
			finalRecord(4, horizon, domain.StatusMortgage, 20, 640000, 50000, 460000),
			finalRecord(5, horizon, domain.StatusBuy, 60, 600000, 3000, 560000),
		},
	}
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(testResult(), 4)
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Scenarios)
	assert.Equal(t, 4, summary.BuyScenarios)
	assert.Equal(t, 2, summary.RentScenarios)
	assert.InDelta(t, 4.0/6.0, summary.BuyShare(), 1e-12)

	// buy net values: 290000, 260000, 230000, 43000
	assert.True(t, summary.MedianBuy.Equal(d(245000)), "median buy %s", summary.MedianBuy)
	assert.True(t, summary.MedianRent.Equal(d(210000)), "median rent %s", summary.MedianRent)
	assert.True(t, summary.MedianReturn.Equal(d(35000)), "median return %s", summary.MedianReturn)

	require.Len(t, summary.ByPurchaseYear, 3)
	assert.Equal(t, 1, summary.ByPurchaseYear[0].Year)
	assert.True(t, summary.ByPurchaseYear[0].MedianNetValue.Equal(d(290000)))
	assert.Equal(t, 2, summary.ByPurchaseYear[1].Year)
	assert.Equal(t, 2, summary.ByPurchaseYear[1].Scenarios)
	assert.True(t, summary.ByPurchaseYear[1].MedianNetValue.Equal(d(245000)))
	assert.Equal(t, 6, summary.ByPurchaseYear[2].Year, "a purchase in the final month falls in year 6")

	outcomes := summary.Outcomes
	require.Len(t, outcomes, 6)
	assert.Equal(t, domain.StatusRent, outcomes[0].Status)
	assert.Equal(t, domain.StatusBuy, outcomes[2].Status, "mortgage collapses to buy")
	assert.Equal(t, 1, outcomes[2].PurchaseYear)
	assert.Equal(t, 6, outcomes[0].PurchaseYear)
	assert.True(t, outcomes[2].ComparisonNetValue.Equal(d(80000)))
	assert.True(t, outcomes[5].ComparisonNetValue.Equal(d(-167000)))

	assert.InDelta(t, 1.0/6.0, outcomes[5].PercentileRank, 1e-12)
	assert.InDelta(t, 1.0, outcomes[2].PercentileRank, 1e-12)
}

func TestSummarize_Histogram(t *testing.T) {
	summary, err := Summarize(testResult(), 4)
	require.NoError(t, err)

	hist := summary.Histogram
	require.Len(t, hist, 4)
	assert.Equal(t, 43000.0, hist[0].Lower)
	assert.Equal(t, 290000.0, hist[3].Upper)

	buy, rent := 0, 0
	for _, b := range hist {
		buy += b.Buy
		rent += b.Rent
	}
	assert.Equal(t, 4, buy)
	assert.Equal(t, 2, rent)
	assert.Equal(t, 1, hist[0].Buy, "lowest outcome")
	assert.Equal(t, 2, hist[2].Rent)
	assert.Equal(t, 3, hist[3].Buy, "highest outcome lands in the closed last bin")
}

func TestSummarize_AllRent(t *testing.T) {
	result := &domain.SimulationResult{
		HorizonMonths: 12,
		Records: []domain.MonthlyRecord{
			finalRecord(0, 12, domain.StatusRent, 13, 0, 50000, 0),
			finalRecord(1, 12, domain.StatusRent, 13, 0, 50000, 0),
		},
	}

	summary, err := Summarize(result, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.BuyScenarios)
	assert.True(t, summary.MedianBuy.IsZero())
	assert.Empty(t, summary.ByPurchaseYear)
	assert.InDelta(t, 0.75, summary.Outcomes[0].PercentileRank, 1e-12, "ties share the average rank")
	require.Len(t, summary.Histogram, 1)
	assert.Equal(t, 2, summary.Histogram[0].Rent)
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := Summarize(&domain.SimulationResult{HorizonMonths: 60}, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Scenarios)
	assert.Equal(t, 0.0, summary.BuyShare())
	assert.Nil(t, summary.Histogram)

	_, err = Summarize(nil, 10)
	assert.Error(t, err)
}

func TestMedian(t *testing.T) {
	assert.True(t, Median(nil).IsZero())
	assert.True(t, Median([]decimal.Decimal{d(5)}).Equal(d(5)))
	assert.True(t, Median([]decimal.Decimal{d(9), d(1), d(5)}).Equal(d(5)))
	assert.True(t, Median([]decimal.Decimal{d(4), d(1), d(3), d(2)}).Equal(decimal.RequireFromString("2.5")))
}

func TestPurchaseYear(t *testing.T) {
	assert.Equal(t, 1, PurchaseYear(0))
	assert.Equal(t, 1, PurchaseYear(11))
	assert.Equal(t, 2, PurchaseYear(12))
	assert.Equal(t, 6, PurchaseYear(61))
}
