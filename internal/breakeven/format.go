package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rentbuy/internal/output"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format renders every result in order
func (tf *TableFormatter) Format(results []Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	for i := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		tf.formatResult(&sb, &results[i])
	}
	return sb.String()
}

func (tf *TableFormatter) formatResult(sb *strings.Builder, r *Result) {
	sb.WriteString(fmt.Sprintf("Target:       %s\n", targetLabel(r.Target)))
	sb.WriteString(fmt.Sprintf("Range:        %s to %s\n", output.FormatCurrency(r.Lower), output.FormatCurrency(r.Upper)))
	sb.WriteString(fmt.Sprintf("Seed:         %d\n", r.Seed))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(r)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", r.Iterations))
	if r.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", r.ConvergenceInfo))
	}
	if r.Success && r.AtValue != nil {
		sb.WriteString(fmt.Sprintf("Break-even:   %s\n", output.FormatCurrency(r.Value)))
		sb.WriteString(fmt.Sprintf("  Median buy:    %s\n", output.FormatCurrency(r.AtValue.MedianBuy)))
		sb.WriteString(fmt.Sprintf("  Median rent:   %s\n", output.FormatCurrency(r.AtValue.MedianRent)))
		sb.WriteString(fmt.Sprintf("  Median return: %s\n", output.FormatCurrency(r.AtValue.MedianReturn)))
		sb.WriteString(fmt.Sprintf("  Buy share:     %s\n", output.FormatPercentage(r.AtValue.BuyShare)))
	}

	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%15s %15s %15s %15s %10s\n", "Value", "Median buy", "Median rent", "Median return", "Buy share"))
	for _, e := range r.Evaluations {
		sb.WriteString(fmt.Sprintf("%15s %15s %15s %15s %9.1f%%\n",
			output.FormatCurrency(e.Value),
			output.FormatCurrency(e.MedianBuy),
			output.FormatCurrency(e.MedianRent),
			output.FormatCurrency(e.MedianReturn),
			e.BuyShare*100))
	}
}

func (tf *TableFormatter) formatStatus(r *Result) string {
	switch {
	case !r.Success:
		return "no break-even in range"
	case !r.Bounded:
		return "beyond range"
	case r.Converged:
		return "converged"
	default:
		return "not converged"
	}
}

// JSONFormatter formats break-even results as JSON
type JSONFormatter struct{}

// Format renders the results as indented JSON
func (jf *JSONFormatter) Format(results []Result) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}

func targetLabel(t Target) string {
	switch t {
	case TargetPrice:
		return "highest purchase price"
	case TargetRent:
		return "lowest monthly rent"
	default:
		return string(t)
	}
}
