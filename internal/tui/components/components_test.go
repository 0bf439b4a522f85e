package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Median return", "$35,000").WithTrend(true, "+$35,000 vs rent").WithDescription("buy minus rent")
	out := card.Render()

	assert.Contains(t, out, "Median return")
	assert.Contains(t, out, "$35,000")
	assert.Contains(t, out, "vs rent")
	assert.Contains(t, out, "buy minus rent")
}

func TestNewMoneyCard(t *testing.T) {
	card := NewMoneyCard("Median return", decimal.NewFromInt(-12000))
	assert.Equal(t, "-$12,000", card.Value)
	if assert.NotNil(t, card.Trend) {
		assert.False(t, card.Trend.IsPositive)
	}

	assert.Nil(t, NewMoneyCard("Zero", decimal.Zero).Trend)
}

func TestHistogram_Render(t *testing.T) {
	bins := []analysis.HistogramBin{
		{Lower: 0, Upper: 1000, Buy: 4, Rent: 4},
		{Lower: 1000, Upper: 2000, Buy: 0, Rent: 1},
	}
	out := NewHistogram("Net value", bins).WithWidth(8).Render()

	lines := strings.Split(out, "\n")
	assert.Contains(t, out, "Net value")
	assert.Equal(t, 8, strings.Count(lines[2], "█"))
	assert.Equal(t, 1, strings.Count(lines[3], "█"))
	assert.Contains(t, out, "Buy")

	assert.Contains(t, NewHistogram("", nil).Render(), "No data")
}
