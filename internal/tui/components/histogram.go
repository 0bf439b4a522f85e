package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Histogram draws net value bins as horizontal bars, buyers then renters
type Histogram struct {
	Title string
	Bins  []analysis.HistogramBin
	Width int
}

// NewHistogram creates a histogram with a default bar width
func NewHistogram(title string, bins []analysis.HistogramBin) *Histogram {
	return &Histogram{Title: title, Bins: bins, Width: 40}
}

// WithWidth sets the widest bar
func (h *Histogram) WithWidth(width int) *Histogram {
	if width > 0 {
		h.Width = width
	}
	return h
}

// Render returns the styled histogram
func (h *Histogram) Render() string {
	most := 0
	for _, b := range h.Bins {
		if n := b.Buy + b.Rent; n > most {
			most = n
		}
	}
	if most == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	buyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBuy)
	rentStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorRent)
	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(12).
		Align(lipgloss.Right)

	var content strings.Builder
	if h.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(h.Title))
		content.WriteString("\n\n")
	}

	for _, b := range h.Bins {
		buy := barLength(b.Buy, most, h.Width)
		rent := barLength(b.Rent, most, h.Width)
		content.WriteString(axisStyle.Render(tuistyles.FormatCurrency(decimal.NewFromFloat(b.Lower))))
		content.WriteString(" │")
		content.WriteString(buyStyle.Render(strings.Repeat("█", buy)))
		content.WriteString(rentStyle.Render(strings.Repeat("█", rent)))
		content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf(" %d", b.Buy+b.Rent)))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(buyStyle.Render("█") + " Buy   " + rentStyle.Render("█") + " Rent")
	return content.String()
}

func barLength(n, most, width int) int {
	if n == 0 {
		return 0
	}
	cols := n * width / most
	if cols == 0 {
		cols = 1
	}
	return cols
}
