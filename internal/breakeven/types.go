package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the household input the solver moves
type Target string

const (
	// TargetPrice finds the highest purchase price at which buying still
	// matches renting
	TargetPrice Target = "price"
	// TargetRent finds the lowest monthly rent at which buying matches renting
	TargetRent Target = "rent"
)

// Targets lists every supported target in display order
func Targets() []Target {
	return []Target{TargetPrice, TargetRent}
}

// ParseTarget maps a command-line name to a Target
func ParseTarget(name string) (Target, error) {
	for _, t := range Targets() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   fmt.Sprintf("unsupported target %q (want price or rent)", name),
	}
}

// Request defines one break-even search
type Request struct {
	Config        *domain.SimulationConfig
	Target        Target
	Lower         decimal.Decimal
	Upper         decimal.Decimal
	Tolerance     decimal.Decimal // zero selects the target's default
	MaxIterations int             // zero selects the solver's default
}

// Evaluation is the batch outcome at one value of the target
type Evaluation struct {
	Value        decimal.Decimal `json:"value"`
	MedianBuy    decimal.Decimal `json:"medianBuy"`
	MedianRent   decimal.Decimal `json:"medianRent"`
	MedianReturn decimal.Decimal `json:"medianReturn"`
	BuyShare     float64         `json:"buyShare"`
}

// Breaks reports whether buying at least matches renting
func (e Evaluation) Breaks() bool {
	return !e.MedianReturn.IsNegative()
}

// Result is the outcome of a break-even search
type Result struct {
	Target Target `json:"target"`
	Seed   int64  `json:"seed"`
	// Success is false when buying falls short of renting everywhere in
	// the searched range
	Success bool `json:"success"`
	// Bounded is false when buying still beats renting at the far end of
	// the range, so the break-even lies beyond it
	Bounded         bool            `json:"bounded"`
	Converged       bool            `json:"converged"`
	Iterations      int             `json:"iterations"`
	ConvergenceInfo string          `json:"convergenceInfo"`
	Lower           decimal.Decimal `json:"lower"`
	Upper           decimal.Decimal `json:"upper"`
	Value           decimal.Decimal `json:"value"`
	AtValue         *Evaluation     `json:"atValue,omitempty"`
	Evaluations     []Evaluation    `json:"evaluations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations  int
	PriceTolerance decimal.Decimal
	RentTolerance  decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:  30,
		PriceTolerance: decimal.NewFromInt(1000),
		RentTolerance:  decimal.NewFromInt(10),
	}
}

// tolerance returns the default tolerance of a target
func (o SolverOptions) tolerance(t Target) decimal.Decimal {
	if t == TargetRent {
		return o.RentTolerance
	}
	return o.PriceTolerance
}

// DefaultBounds returns the search range for a target: the configured price
// range for price, zero to three times the configured rent for rent
func DefaultBounds(cfg *domain.SimulationConfig, t Target) (decimal.Decimal, decimal.Decimal) {
	if t == TargetRent {
		return decimal.Zero, cfg.Household.MonthlyRent.Mul(decimal.NewFromInt(3))
	}
	sim := cfg.Simulation
	if len(sim.PurchasePrices) == 0 {
		return sim.PriceMin, sim.PriceMax
	}
	lo, hi := sim.PurchasePrices[0], sim.PurchasePrices[0]
	for _, p := range sim.PurchasePrices[1:] {
		lo = decimal.Min(lo, p)
		hi = decimal.Max(hi, p)
	}
	return lo, hi
}

// Validate checks the request before any batch runs
func (r *Request) Validate() error {
	if r.Config == nil {
		return &BreakEvenError{Operation: "validate_request", Message: "configuration is required"}
	}
	if r.Target != TargetPrice && r.Target != TargetRent {
		return &BreakEvenError{Operation: "validate_request", Message: fmt.Sprintf("unsupported target %q", r.Target)}
	}
	if r.Lower.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "lower bound cannot be negative"}
	}
	if r.Target == TargetPrice && !r.Lower.IsPositive() {
		return &BreakEvenError{Operation: "validate_request", Message: "lower price bound must be positive"}
	}
	if !r.Upper.GreaterThan(r.Lower) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("upper bound %s must exceed lower bound %s", r.Upper, r.Lower),
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "tolerance cannot be negative"}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{Operation: "validate_request", Message: "max iterations cannot be negative"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
