package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/tui/components"
	"github.com/rgehrsitz/rentbuy/internal/tui/tuistyles"
)

// ResultsModel shows the summary of the last batch
type ResultsModel struct {
	summary     *analysis.Summary
	adjustments []string
	width       int
	height      int
}

// NewResultsModel creates an empty results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetSummary replaces the displayed summary
func (m *ResultsModel) SetSummary(summary *analysis.Summary, adjustments []string) {
	m.summary = summary
	m.adjustments = adjustments
}

// Summary returns the displayed summary
func (m *ResultsModel) Summary() *analysis.Summary {
	return m.summary
}

// SetSize updates the model dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the results
func (m *ResultsModel) View() string {
	s := m.summary
	if s == nil {
		return tuistyles.InfoStyle.Render("No results yet. Fill in the form and press Calculate.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf(
		"%d scenarios over %d months · monthly buy probability %.3f · %d purchased (%.1f%%)",
		s.Scenarios, s.HorizonMonths, s.Calibration.BuyProbability, s.BuyScenarios, s.BuyShare()*100)))
	b.WriteString("\n")
	for _, a := range m.adjustments {
		b.WriteString(tuistyles.WarningStyle.Render("Note: " + a))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(components.MetricRow(
		components.NewMetricCard("Purchase median net value", tuistyles.FormatCurrency(s.MedianBuy)),
		components.NewMetricCard("Rent median net value", tuistyles.FormatCurrency(s.MedianRent)),
		components.NewMoneyCard("Median return", s.MedianReturn),
	))
	b.WriteString("\n\n")

	if len(s.ByPurchaseYear) > 0 {
		b.WriteString(tuistyles.TitleStyle.Render("Median net value by purchase year"))
		b.WriteString("\n")
		for _, y := range s.ByPurchaseYear {
			diff := y.MedianNetValue.Sub(s.MedianRent)
			trend := tuistyles.MetricTrendStyle(!diff.IsNegative()).Render(
				fmt.Sprintf("%s %s vs rent", tuistyles.TrendIndicator(!diff.IsNegative()), tuistyles.FormatCurrency(diff)))
			b.WriteString(fmt.Sprintf("  Year %d  %5d  %12s  %s\n", y.Year, y.Scenarios, tuistyles.FormatCurrency(y.MedianNetValue), trend))
		}
		b.WriteString("\n")
	}

	width := 40
	if m.width > 40 {
		width = m.width - 30
	}
	b.WriteString(components.NewHistogram("Net value at the horizon", s.Histogram).WithWidth(width).Render())
	return b.String()
}
