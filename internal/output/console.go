package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// HistogramBarWidth is the widest bar drawn for a histogram bin
const HistogramBarWidth = 40

// ConsoleFormatter renders the summary report as styled text
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.SimulationResult) ([]byte, error) {
	summary, err := analysis.Summarize(results, analysis.DefaultHistogramBins)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	title := "RENT VS BUY SIMULATION"
	fmt.Fprintln(&buf, headingStyle.Render(title))
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintf(&buf, "Scenarios:                  %d over %d months (seed %d)\n", summary.Scenarios, summary.HorizonMonths, summary.Seed)
	fmt.Fprintf(&buf, "Monthly buy probability:    %.3f\n", summary.Calibration.BuyProbability)
	fmt.Fprintf(&buf, "Purchased:                  %d (%s)\n", summary.BuyScenarios, FormatPercentage(summary.BuyShare()))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Purchase median net value:  %s\n", FormatCurrency(summary.MedianBuy))
	fmt.Fprintf(&buf, "Rent median net value:      %s\n", FormatCurrency(summary.MedianRent))
	fmt.Fprintf(&buf, "Median return:              %s\n", signed(summary.MedianReturn.IsNegative(), FormatCurrency(summary.MedianReturn)))
	fmt.Fprintln(&buf)

	if len(summary.ByPurchaseYear) > 0 {
		fmt.Fprintln(&buf, headingStyle.Render("MEDIAN NET VALUE BY PURCHASE YEAR"))
		for _, y := range summary.ByPurchaseYear {
			diff := y.MedianNetValue.Sub(summary.MedianRent)
			fmt.Fprintf(&buf, "Year %-3d %6d scenarios  %14s  %s\n", y.Year, y.Scenarios,
				FormatCurrency(y.MedianNetValue),
				signed(diff.IsNegative(), FormatCurrency(diff)+" vs rent"))
		}
		fmt.Fprintln(&buf)
	}

	if len(summary.Histogram) > 0 {
		fmt.Fprintln(&buf, headingStyle.Render("NET VALUE DISTRIBUTION"))
		fmt.Fprintln(&buf, mutedStyle.Render("# bought   . rented"))
		for _, line := range HistogramLines(summary.Histogram, HistogramBarWidth) {
			fmt.Fprintln(&buf, line)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, headingStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	return buf.Bytes(), nil
}

// HistogramLines renders one line per bin: its range followed by a bar of
// '#' for buyers and '.' for renters, scaled so the fullest bin is width wide
func HistogramLines(bins []analysis.HistogramBin, width int) []string {
	most := 0
	for _, b := range bins {
		if n := b.Buy + b.Rent; n > most {
			most = n
		}
	}
	if most == 0 || width <= 0 {
		return nil
	}

	lines := make([]string, len(bins))
	for i, b := range bins {
		buy := scaled(b.Buy, most, width)
		rent := scaled(b.Rent, most, width)
		lines[i] = fmt.Sprintf("%12s .. %-12s |%s%s %d",
			FormatCurrency(decimal.NewFromFloat(b.Lower)), FormatCurrency(decimal.NewFromFloat(b.Upper)),
			strings.Repeat("#", buy), strings.Repeat(".", rent), b.Buy+b.Rent)
	}
	return lines
}

// scaled maps n of most onto width columns, keeping any non-zero count visible
func scaled(n, most, width int) int {
	if n == 0 {
		return 0
	}
	cols := n * width / most
	if cols == 0 {
		cols = 1
	}
	return cols
}

func signed(negative bool, s string) string {
	if negative {
		return negativeStyle.Render(s)
	}
	return positiveStyle.Render(s)
}
