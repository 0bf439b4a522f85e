package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// CSVFormatter writes one row per scenario-month, ordered by scenario then month
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Month", "PurchasePrice", "LoanAmount", "HomePrice", "SavingsBalance", "MonthlyRepayment", "PurchaseMonth", "AffordabilityRatio", "HomeStatus"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range results.Records {
		row := []string{
			strconv.Itoa(rec.ScenarioID),
			strconv.Itoa(rec.Month),
			rec.PurchasePrice.StringFixed(2),
			rec.LoanAmount.StringFixed(2),
			rec.HomePrice.StringFixed(2),
			rec.SavingsBalance.StringFixed(2),
			rec.MonthlyPayment.StringFixed(2),
			strconv.Itoa(rec.PurchaseMonth),
			rec.AffordabilityRatio.StringFixed(6),
			rec.HomeStatus.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// OutcomesCSVFormatter writes one row per scenario with its terminal outcome
type OutcomesCSVFormatter struct{}

func (c OutcomesCSVFormatter) Name() string { return "outcomes-csv" }

func (c OutcomesCSVFormatter) Format(results *domain.SimulationResult) ([]byte, error) {
	summary, err := analysis.Summarize(results, analysis.DefaultHistogramBins)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "PurchasePrice", "NetValue", "PurchaseMonth", "PurchaseYear", "HomeStatus", "PercentileRank", "ComparisonNetValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range summary.Outcomes {
		row := []string{
			strconv.Itoa(o.ScenarioID),
			o.PurchasePrice.StringFixed(2),
			o.NetValue.StringFixed(2),
			strconv.Itoa(o.PurchaseMonth),
			strconv.Itoa(o.PurchaseYear),
			o.Status.String(),
			strconv.FormatFloat(o.PercentileRank, 'f', 6, 64),
			o.ComparisonNetValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
