package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	infos int
}

func (l *recordingLogger) Infof(format string, args ...interface{}) { l.infos++ }

func TestNewSimulationRunner(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.Workers = 3

	runner, err := NewSimulationRunner(cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(42), runner.Seed())
	assert.Equal(t, 3, runner.Workers())
	assert.InDelta(t, 0.035, runner.Calibration().BuyProbability, 1e-12)
	assert.Len(t, runner.Table().Brackets(), 17)

	runner, err = NewSimulationRunner(cfg, WithSeed(7), WithWorkers(2), WithWorkers(0))
	require.NoError(t, err)
	assert.Equal(t, int64(7), runner.Seed())
	assert.Equal(t, 2, runner.Workers())
}

func TestNewSimulationRunner_InvalidConfig(t *testing.T) {
	_, err := NewSimulationRunner(nil)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	cfg := testConfig()
	cfg.RateTable = cfg.RateTable[:1]
	_, err = NewSimulationRunner(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "failed to build rate table")

	cfg = testConfig()
	cfg.Calibration.TargetConfidence = 0
	_, err = NewSimulationRunner(cfg)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	cfg = testConfig()
	cfg.Household.PurchaseCosts = decimal.NewFromInt(-1)
	_, err = NewSimulationRunner(cfg)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestSimulationRunner_Run_OrderAndShape(t *testing.T) {
	runner, err := NewSimulationRunner(testConfig(), WithWorkers(4))
	require.NoError(t, err)

	prices := []decimal.Decimal{
		decimal.NewFromInt(600000),
		decimal.NewFromInt(650000),
		decimal.NewFromInt(600000),
		decimal.NewFromInt(525000),
		decimal.NewFromInt(575000),
	}
	records, err := runner.Run(context.Background(), prices)
	require.NoError(t, err)
	require.Len(t, records, len(prices)*61)

	for i, rec := range records {
		assert.Equal(t, i/61, rec.ScenarioID)
		assert.Equal(t, i%61, rec.Month)
		assert.True(t, rec.PurchasePrice.Equal(prices[rec.ScenarioID]))
	}
}

func TestSimulationRunner_Run_DeterministicAcrossWorkerCounts(t *testing.T) {
	cfg := testConfig()

	single, err := NewSimulationRunner(cfg, WithWorkers(1))
	require.NoError(t, err)
	pool, err := NewSimulationRunner(cfg, WithWorkers(8))
	require.NoError(t, err)

	prices, err := single.PurchasePrices()
	require.NoError(t, err)
	require.Len(t, prices, 50)

	a, err := single.Run(context.Background(), prices)
	require.NoError(t, err)
	b, err := pool.Run(context.Background(), prices)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := NewSimulationRunner(cfg, WithSeed(43))
	require.NoError(t, err)
	c, err := other.Run(context.Background(), prices)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSimulationRunner_Simulate(t *testing.T) {
	logger := &recordingLogger{}
	runner, err := NewSimulationRunner(testConfig(), WithLogger(logger))
	require.NoError(t, err)

	result, err := runner.Simulate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 60, result.HorizonMonths)
	assert.Equal(t, 50, result.NumScenarios)
	assert.Equal(t, int64(42), result.Seed)
	assert.Len(t, result.Records, 50*61)
	assert.Len(t, result.FinalRecords(), 50)
	assert.GreaterOrEqual(t, logger.infos, 3)

	again, err := runner.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Records, again.Records)
}

func TestSimulationRunner_PurchasePricesFromList(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.PurchasePrices = []decimal.Decimal{decimal.NewFromInt(610000), decimal.NewFromInt(620000)}

	runner, err := NewSimulationRunner(cfg)
	require.NoError(t, err)

	prices, err := runner.PurchasePrices()
	require.NoError(t, err)
	assert.Equal(t, cfg.Simulation.PurchasePrices, prices)

	result, err := runner.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.NumScenarios)
}

func TestSimulationRunner_Run_EmptyInput(t *testing.T) {
	runner, err := NewSimulationRunner(testConfig())
	require.NoError(t, err)

	records, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSimulationRunner_Run_InvalidPrice(t *testing.T) {
	runner, err := NewSimulationRunner(testConfig())
	require.NoError(t, err)

	records, err := runner.Run(context.Background(), []decimal.Decimal{decimal.NewFromInt(600000), decimal.Zero})
	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestSimulationRunner_Run_Cancelled(t *testing.T) {
	runner, err := NewSimulationRunner(testConfig(), WithWorkers(2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prices := make([]decimal.Decimal, 20)
	for i := range prices {
		prices[i] = decimal.NewFromInt(600000)
	}
	records, err := runner.Run(ctx, prices)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
}

func TestScenarioSeed(t *testing.T) {
	assert.Equal(t, ScenarioSeed(42, 3), ScenarioSeed(42, 3))
	assert.NotEqual(t, ScenarioSeed(42, 3), ScenarioSeed(42, 4))
	assert.NotEqual(t, ScenarioSeed(42, 3), ScenarioSeed(43, 3))
}
