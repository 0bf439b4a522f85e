package calculation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplePurchasePrices(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	min, max, inc := decimal.NewFromInt(600000), decimal.NewFromInt(650000), decimal.NewFromInt(5000)

	prices, err := SamplePurchasePrices(rng, min, max, inc, 2000)
	require.NoError(t, err)
	require.Len(t, prices, 2000)

	seen := map[string]bool{}
	for _, p := range prices {
		assert.True(t, p.GreaterThanOrEqual(min) && p.LessThanOrEqual(max), "price %s out of range", p)
		assert.True(t, p.Sub(min).Mod(inc).IsZero(), "price %s is off the increment grid", p)
		seen[p.String()] = true
	}
	assert.Len(t, seen, 11, "every step should be drawn at least once")
	assert.True(t, seen["650000"], "max is inclusive")
}

func TestSamplePurchasePrices_Deterministic(t *testing.T) {
	min, max, inc := decimal.NewFromInt(500000), decimal.NewFromInt(700000), decimal.NewFromInt(5000)

	a, err := SamplePurchasePrices(rand.New(rand.NewSource(7)), min, max, inc, 25)
	require.NoError(t, err)
	b, err := SamplePurchasePrices(rand.New(rand.NewSource(7)), min, max, inc, 25)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSamplePurchasePrices_SingleStep(t *testing.T) {
	price := decimal.NewFromInt(550000)
	prices, err := SamplePurchasePrices(rand.New(rand.NewSource(1)), price, price, decimal.NewFromInt(5000), 3)
	require.NoError(t, err)
	for _, p := range prices {
		assert.True(t, p.Equal(price))
	}
}

func TestSamplePurchasePrices_Invalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inc := decimal.NewFromInt(5000)

	_, err := SamplePurchasePrices(rng, decimal.NewFromInt(1), decimal.NewFromInt(2), inc, 0)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	_, err = SamplePurchasePrices(rng, decimal.Zero, decimal.NewFromInt(2), inc, 1)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	_, err = SamplePurchasePrices(rng, decimal.NewFromInt(10), decimal.NewFromInt(2), inc, 1)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	_, err = SamplePurchasePrices(rng, decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.Zero, 1)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
