package compare

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Scenarios",
		"Buy Share",
		"Median Buy",
		"Median Rent",
		"Median Return",
		"Median Purchase Year",
		"Return Diff from Base",
		"Buy Share Diff",
		"Median Buy Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.Scenarios),
		formatFraction(result.BuyShare),
		result.MedianBuy.StringFixed(2),
		result.MedianRent.StringFixed(2),
		result.MedianReturn.StringFixed(2),
		strconv.Itoa(result.MedianPurchaseYear),
		result.ReturnDiffFromBase.StringFixed(2),
		formatFraction(result.BuyShareDiffFromBase),
		result.MedianBuyDiffFromBase.StringFixed(2),
	}
}

func formatFraction(f float64) string {
	return fmt.Sprintf("%.4f", f)
}
