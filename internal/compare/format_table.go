package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rentbuy/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("RENT VS BUY SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Seed:          %d\n", compSet.Seed))
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth-4, "Buyers",
		numWidth, "Median buy",
		numWidth, "Median rent",
		numWidth, "Median return"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Median return:     %s%s\n",
				tf.deltaSymbol(alt.ReturnDiffFromBase), output.FormatCurrency(alt.ReturnDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Median buy value:  %s%s\n",
				tf.deltaSymbol(alt.MedianBuyDiffFromBase), output.FormatCurrency(alt.MedianBuyDiffFromBase)))
			if alt.BuyShareDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Buyers:            %+.1f points\n", alt.BuyShareDiffFromBase*100))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	if result == nil {
		return ""
	}
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth-4, output.FormatPercentage(result.BuyShare),
		numWidth, tf.formatDecimal(result.MedianBuy),
		numWidth, tf.formatDecimal(result.MedianRent),
		numWidth, tf.formatDecimal(result.MedianReturn))
}

// formatDecimal formats an amount compactly in thousands or millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	switch {
	case d.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return sign + "$" + d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return sign + "$" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return sign + "$" + d.StringFixed(0)
}

// deltaSymbol returns "+" for gains; losses carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the return deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.ReturnDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.ReturnDiffFromBase) + tf.formatDecimal(alt.ReturnDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}
	return sb.String()
}
