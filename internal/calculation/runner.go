package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulationRunner fans the scenario simulator out over a batch of purchase
// prices. The rate table and calibration are built once at construction and
// shared read-only by every worker.
type SimulationRunner struct {
	config      *domain.SimulationConfig
	params      ScenarioParams
	table       *LTVRateTable
	calibration domain.CalibrationResult
	workers     int
	seed        int64
	Logger      Logger
}

// RunnerOption customises a SimulationRunner
type RunnerOption func(*SimulationRunner)

// WithWorkers sets the worker pool size (values below 1 are ignored)
func WithWorkers(n int) RunnerOption {
	return func(r *SimulationRunner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithSeed fixes the base seed of the run
func WithSeed(seed int64) RunnerOption {
	return func(r *SimulationRunner) { r.seed = seed }
}

// WithLogger sets the runner's logger
func WithLogger(l Logger) RunnerOption {
	return func(r *SimulationRunner) { r.SetLogger(l) }
}

// NewSimulationRunner validates the configuration, builds the rate table and
// calibrates the decision probability.
func NewSimulationRunner(cfg *domain.SimulationConfig, opts ...RunnerOption) (*SimulationRunner, error) {
	if cfg == nil {
		return nil, domain.NewConfigurationError("", "configuration is required")
	}

	params := ParamsFromConfig(cfg)
	if err := params.Validate(); err != nil {
		return nil, err
	}

	table, err := NewLTVRateTable(cfg.RateTable)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate table: %w", err)
	}

	grid, err := ProbabilityGrid(cfg.Calibration.ProbabilityGridStep)
	if err != nil {
		return nil, fmt.Errorf("failed to build probability grid: %w", err)
	}
	calibration, err := Calibrate(params.HorizonMonths, cfg.Calibration.TargetConfidence, grid)
	if err != nil {
		return nil, fmt.Errorf("failed to calibrate buy probability: %w", err)
	}

	r := &SimulationRunner{
		config:      cfg,
		params:      params,
		table:       table,
		calibration: calibration,
		workers:     runtime.NumCPU(),
		seed:        time.Now().UnixNano(),
		Logger:      NopLogger{},
	}
	if cfg.Simulation.Workers > 0 {
		r.workers = cfg.Simulation.Workers
	}
	if cfg.Simulation.Seed != nil {
		r.seed = *cfg.Simulation.Seed
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Logger.Infof("calibrated buy probability %.3f over %d months (target %.2f)",
		calibration.BuyProbability, params.HorizonMonths, cfg.Calibration.TargetConfidence)
	return r, nil
}

// SetLogger sets the logger, falling back to NopLogger for nil
func (r *SimulationRunner) SetLogger(l Logger) {
	if l == nil {
		r.Logger = NopLogger{}
		return
	}
	r.Logger = l
}

// Calibration returns the decision probability used by every scenario
func (r *SimulationRunner) Calibration() domain.CalibrationResult { return r.calibration }

// Table returns the rate table used by every scenario
func (r *SimulationRunner) Table() *LTVRateTable { return r.table }

// Seed returns the base seed of the run
func (r *SimulationRunner) Seed() int64 { return r.seed }

// Workers returns the worker pool size
func (r *SimulationRunner) Workers() int { return r.workers }

// PurchasePrices returns the configured price list, or samples one from the
// configured range using the run's seed
func (r *SimulationRunner) PurchasePrices() ([]decimal.Decimal, error) {
	sim := r.config.Simulation
	if len(sim.PurchasePrices) > 0 {
		return append([]decimal.Decimal(nil), sim.PurchasePrices...), nil
	}
	rng := rand.New(rand.NewSource(r.seed))
	return SamplePurchasePrices(rng, sim.PriceMin, sim.PriceMax, sim.PriceIncrement, sim.NumScenarios)
}

// Simulate resolves the purchase prices and runs the whole batch
func (r *SimulationRunner) Simulate(ctx context.Context) (*domain.SimulationResult, error) {
	prices, err := r.PurchasePrices()
	if err != nil {
		return nil, err
	}
	records, err := r.Run(ctx, prices)
	if err != nil {
		return nil, err
	}
	return &domain.SimulationResult{
		HorizonMonths: r.params.HorizonMonths,
		NumScenarios:  len(prices),
		Seed:          r.seed,
		Calibration:   r.calibration,
		Records:       records,
	}, nil
}

// Run simulates one scenario per purchase price and returns every record,
// ordered by scenario then month. The scenario id is the price's position in
// the input. Cancellation is checked between scenarios; a cancelled run
// returns no records.
func (r *SimulationRunner) Run(ctx context.Context, purchasePrices []decimal.Decimal) ([]domain.MonthlyRecord, error) {
	for i, p := range purchasePrices {
		if !p.IsPositive() {
			return nil, domain.NewConfigurationError("purchase_prices", "price %d must be positive, got %s", i, p)
		}
	}
	if len(purchasePrices) == 0 {
		return nil, nil
	}

	workers := r.workers
	if workers > len(purchasePrices) {
		workers = len(purchasePrices)
	}
	r.Logger.Infof("running %d scenarios over %d months on %d workers (seed %d)",
		len(purchasePrices), r.params.HorizonMonths, workers, r.seed)
	start := time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	perScenario := make([][]domain.MonthlyRecord, len(purchasePrices))
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if runCtx.Err() != nil {
					continue
				}
				records, err := r.runScenario(id, purchasePrices[id])
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				perScenario[id] = records
			}
		}()
	}

feed:
	for id := range purchasePrices {
		select {
		case <-runCtx.Done():
			break feed
		case jobs <- id:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([]domain.MonthlyRecord, 0, len(purchasePrices)*(r.params.HorizonMonths+1))
	for _, records := range perScenario {
		rows = append(rows, records...)
	}
	r.Logger.Infof("simulated %d rows in %s", len(rows), time.Since(start).Round(time.Millisecond))
	return rows, nil
}

func (r *SimulationRunner) runScenario(id int, price decimal.Decimal) ([]domain.MonthlyRecord, error) {
	rng := rand.New(rand.NewSource(ScenarioSeed(r.seed, id)))
	sim, err := NewScenarioSimulator(id, price, r.params, r.table, r.calibration, rng)
	if err != nil {
		return nil, err
	}
	records, err := sim.Run()
	if err != nil {
		return nil, err
	}
	if final := sim.State(); final.PurchaseMonth <= r.params.HorizonMonths {
		r.Logger.Debugf("scenario %d: bought at %s in month %d", id, price.StringFixed(0), final.PurchaseMonth)
	}
	return records, nil
}

// ScenarioSeed derives an independent seed for one scenario from the run's
// base seed (splitmix64 finaliser), so results do not depend on scheduling.
func ScenarioSeed(seed int64, scenarioID int) int64 {
	z := uint64(seed) + uint64(scenarioID+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
