package breakeven

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/calculation"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateFunc runs one batch and summarizes it
type EvaluateFunc func(ctx context.Context, cfg *domain.SimulationConfig) (*analysis.Summary, error)

// Solver bisects one household input until the median return of buying
// over renting crosses zero. Every evaluation reuses the same seed, so
// scenario i draws the same random streams at every probed value.
type Solver struct {
	Options  SolverOptions
	Logger   calculation.Logger
	Evaluate EvaluateFunc
}

// NewSolver creates a new break-even solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{
		Options:  options,
		Logger:   calculation.NopLogger{},
		Evaluate: RunBatch,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// RunBatch simulates and summarizes one configuration
func RunBatch(ctx context.Context, cfg *domain.SimulationConfig) (*analysis.Summary, error) {
	return analysis.RunBatch(ctx, cfg)
}

// Solve runs the search described by req
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.tolerance(req.Target)
	}

	seed := time.Now().UnixNano()
	if req.Config.Simulation.Seed != nil {
		seed = *req.Config.Simulation.Seed
	}

	result := &Result{
		Target: req.Target,
		Seed:   seed,
		Lower:  req.Lower,
		Upper:  req.Upper,
	}
	eval := func(v decimal.Decimal) (Evaluation, error) {
		e, err := s.evaluateAt(ctx, req, seed, v)
		if err != nil {
			return e, err
		}
		result.Evaluations = append(result.Evaluations, e)
		s.logger().Debugf("%s %s: median return %s", req.Target, v.StringFixed(2), e.MedianReturn.StringFixed(2))
		return e, nil
	}

	lower, err := eval(req.Lower)
	if err != nil {
		return nil, err
	}
	upper, err := eval(req.Upper)
	if err != nil {
		return nil, err
	}

	// price: buying gets worse as the price rises; rent: buying gets
	// better as the rent rises
	good, bad := upper, lower
	if req.Target == TargetPrice {
		good, bad = lower, upper
	}

	if !good.Breaks() {
		result.ConvergenceInfo = fmt.Sprintf("buying falls short of renting across %s to %s",
			req.Lower.StringFixed(0), req.Upper.StringFixed(0))
		return result, nil
	}
	result.Success = true
	if bad.Breaks() {
		result.Value = bad.Value
		result.AtValue = &bad
		result.ConvergenceInfo = fmt.Sprintf("buying matches renting across the whole range; the break-even lies beyond %s",
			bad.Value.StringFixed(0))
		return result, nil
	}
	result.Bounded = true

	two := decimal.NewFromInt(2)
	for result.Iterations < req.MaxIterations && bad.Value.Sub(good.Value).Abs().GreaterThan(req.Tolerance) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result.Iterations++
		mid := good.Value.Add(bad.Value).Div(two).Round(2)
		e, err := eval(mid)
		if err != nil {
			return nil, err
		}
		if e.Breaks() {
			good = e
		} else {
			bad = e
		}
	}

	result.Value = good.Value
	result.AtValue = &good
	result.Converged = !bad.Value.Sub(good.Value).Abs().GreaterThan(req.Tolerance)
	if result.Converged {
		result.ConvergenceInfo = fmt.Sprintf("converged within %s after %d iterations",
			req.Tolerance.StringFixed(0), result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("stopped after %d iterations with a gap of %s",
			result.Iterations, bad.Value.Sub(good.Value).Abs().StringFixed(2))
	}
	return result, nil
}

// SolveAll searches every target over its default bounds
func (s *Solver) SolveAll(ctx context.Context, cfg *domain.SimulationConfig) ([]Result, error) {
	if cfg == nil {
		return nil, &BreakEvenError{Operation: "solve_all", Message: "configuration is required"}
	}
	results := make([]Result, 0, len(Targets()))
	for _, t := range Targets() {
		lower, upper := DefaultBounds(cfg, t)
		r, err := s.Solve(ctx, Request{Config: cfg, Target: t, Lower: lower, Upper: upper})
		if err != nil {
			return nil, &BreakEvenError{Operation: "solve_all", Message: fmt.Sprintf("target %s failed", t), Cause: err}
		}
		results = append(results, *r)
	}
	return results, nil
}

// evaluateAt runs the batch with the target set to v
func (s *Solver) evaluateAt(ctx context.Context, req Request, seed int64, v decimal.Decimal) (Evaluation, error) {
	cfg := withTarget(req.Config, req.Target, v)
	cfg.Simulation.Seed = &seed

	summary, err := s.evaluate()(ctx, cfg)
	if err != nil {
		return Evaluation{}, &BreakEvenError{
			Operation: "evaluate",
			Message:   fmt.Sprintf("%s %s", req.Target, v.StringFixed(2)),
			Cause:     err,
		}
	}
	return Evaluation{
		Value:        v,
		MedianBuy:    summary.MedianBuy,
		MedianRent:   summary.MedianRent,
		MedianReturn: summary.MedianReturn,
		BuyShare:     summary.BuyShare(),
	}, nil
}

// withTarget copies cfg with the target input replaced. A price target runs
// every scenario at the same price.
func withTarget(base *domain.SimulationConfig, t Target, v decimal.Decimal) *domain.SimulationConfig {
	cfg := base.DeepCopy()
	switch t {
	case TargetPrice:
		prices := make([]decimal.Decimal, cfg.Simulation.NumScenarios)
		for i := range prices {
			prices[i] = v
		}
		cfg.Simulation.PurchasePrices = prices
	case TargetRent:
		cfg.Household.MonthlyRent = v
	}
	return cfg
}

func (s *Solver) evaluate() EvaluateFunc {
	if s.Evaluate == nil {
		return RunBatch
	}
	return s.Evaluate
}

func (s *Solver) logger() calculation.Logger {
	if s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}
