package calculation

import (
	"fmt"
	"math/rand"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places kept on money after each month
const moneyScale = 10

// AffordabilityThreshold is the largest insurance-adjusted financed fraction
// of the price at which a purchase may go ahead
var AffordabilityThreshold = decimal.NewFromFloat(0.95)

// ScenarioParams are the household inputs shared by every scenario of a run
type ScenarioParams struct {
	HorizonMonths          int
	InitialSavings         decimal.Decimal
	MonthlySavings         decimal.Decimal
	MonthlyRent            decimal.Decimal
	MonthlyAdditionalCosts decimal.Decimal
	PurchaseCosts          decimal.Decimal
	AnnualInterestRate     decimal.Decimal
	AnnualSavingsRate      decimal.Decimal
	LoanTermMonths         int
	Appreciation           domain.Appreciation
}

// ParamsFromConfig extracts the per-scenario inputs from a configuration
func ParamsFromConfig(cfg *domain.SimulationConfig) ScenarioParams {
	term := cfg.Rates.LoanTermMonths
	if term == 0 {
		term = DefaultLoanTermMonths
	}
	return ScenarioParams{
		HorizonMonths:          cfg.Simulation.HorizonMonths,
		InitialSavings:         cfg.Household.InitialSavings,
		MonthlySavings:         cfg.Household.MonthlySavings,
		MonthlyRent:            cfg.Household.MonthlyRent,
		MonthlyAdditionalCosts: cfg.Household.MonthlyAdditionalCosts,
		PurchaseCosts:          cfg.Household.PurchaseCosts,
		AnnualInterestRate:     cfg.Rates.AnnualInterestRate,
		AnnualSavingsRate:      cfg.Rates.AnnualSavingsRate,
		LoanTermMonths:         term,
		Appreciation:           cfg.Appreciation,
	}
}

// Validate rejects inputs that would make the state machine produce NaN or
// infinities or that fall outside the model's domain
func (p ScenarioParams) Validate() error {
	if p.HorizonMonths <= 0 {
		return domain.NewConfigurationError("horizon_months", "must be positive, got %d", p.HorizonMonths)
	}
	if p.LoanTermMonths <= 0 {
		return domain.NewConfigurationError("loan_term_months", "must be positive, got %d", p.LoanTermMonths)
	}
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"initial_savings", p.InitialSavings},
		{"monthly_savings", p.MonthlySavings},
		{"monthly_rent", p.MonthlyRent},
		{"monthly_additional_costs", p.MonthlyAdditionalCosts},
		{"purchase_costs", p.PurchaseCosts},
		{"annual_interest_rate", p.AnnualInterestRate},
		{"annual_savings_rate", p.AnnualSavingsRate},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return domain.NewConfigurationError(a.field, "cannot be negative, got %s", a.value)
		}
	}
	if p.Appreciation.PeriodsPerDraw <= 0 {
		return domain.NewConfigurationError("appreciation.periods_per_draw", "must be positive, got %d", p.Appreciation.PeriodsPerDraw)
	}
	if p.Appreciation.StdDev < 0 {
		return domain.NewConfigurationError("appreciation.std_dev", "cannot be negative, got %v", p.Appreciation.StdDev)
	}
	return nil
}

// NeverPurchased is the purchase month recorded while a scenario has not bought
func (p ScenarioParams) NeverPurchased() int {
	return p.HorizonMonths + 1
}

// ScenarioState is the mutable state of one scenario
type ScenarioState struct {
	PurchasePrice  decimal.Decimal
	SavingsBalance decimal.Decimal
	LoanAmount     decimal.Decimal
	HomePrice      decimal.Decimal
	MonthlyPayment decimal.Decimal
	HomeStatus     domain.HomeStatus
	PurchaseMonth  int
}

// NewScenarioState starts a renting household holding its initial savings
func NewScenarioState(purchasePrice decimal.Decimal, params ScenarioParams) ScenarioState {
	return ScenarioState{
		PurchasePrice:  purchasePrice,
		SavingsBalance: params.InitialSavings,
		HomeStatus:     domain.StatusRent,
		PurchaseMonth:  params.NeverPurchased(),
	}
}

// ScenarioSimulator advances one scenario from month 0 to the horizon.
// It is not safe for concurrent use; each scenario owns its own simulator
// and random stream.
type ScenarioSimulator struct {
	id          int
	params      ScenarioParams
	table       *LTVRateTable
	odds        domain.CalibrationResult
	rng         *rand.Rand
	monthlyRate decimal.Decimal
	savingsRate decimal.Decimal

	state ScenarioState
	month int
}

// NewScenarioSimulator creates the simulator for one purchase price
func NewScenarioSimulator(id int, purchasePrice decimal.Decimal, params ScenarioParams, table *LTVRateTable, odds domain.CalibrationResult, rng *rand.Rand) (*ScenarioSimulator, error) {
	if !purchasePrice.IsPositive() {
		return nil, domain.NewConfigurationError("purchase_price", "scenario %d: must be positive, got %s", id, purchasePrice)
	}
	if table == nil {
		return nil, domain.NewConfigurationError("rate_table", "scenario %d: no rate table", id)
	}
	if rng == nil {
		return nil, fmt.Errorf("scenario %d: random source is required", id)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &ScenarioSimulator{
		id:          id,
		params:      params,
		table:       table,
		odds:        odds,
		rng:         rng,
		monthlyRate: MonthlyRate(params.AnnualInterestRate),
		savingsRate: one.Add(MonthlyRate(params.AnnualSavingsRate)),
		state:       NewScenarioState(purchasePrice, params),
	}, nil
}

// State returns a copy of the current state
func (s *ScenarioSimulator) State() ScenarioState {
	return s.state
}

// Done reports whether every month of the horizon has been simulated
func (s *ScenarioSimulator) Done() bool {
	return s.month > s.params.HorizonMonths
}

// Run simulates months 0 through the horizon inclusive
func (s *ScenarioSimulator) Run() ([]domain.MonthlyRecord, error) {
	records := make([]domain.MonthlyRecord, 0, s.params.HorizonMonths+1)
	for !s.Done() {
		rec, err := s.Step()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Step advances the scenario by one month and returns that month's record
func (s *ScenarioSimulator) Step() (domain.MonthlyRecord, error) {
	if s.Done() {
		return domain.MonthlyRecord{}, fmt.Errorf("scenario %d: horizon of %d months already reached", s.id, s.params.HorizonMonths)
	}
	month := s.month
	st := &s.state

	affordability := decimal.Zero
	if st.HomeStatus == domain.StatusRent {
		ratio, err := s.affordabilityRatio()
		if err != nil {
			return domain.MonthlyRecord{}, fmt.Errorf("scenario %d month %d: %w", s.id, month, err)
		}
		affordability = ratio
	}

	switch st.HomeStatus {
	case domain.StatusBuy, domain.StatusMortgage:
		st.HomeStatus = domain.StatusMortgage
	case domain.StatusRent:
		st.HomeStatus = s.decide()
	default:
		return domain.MonthlyRecord{}, fmt.Errorf("scenario %d month %d: unknown home status %s", s.id, month, st.HomeStatus)
	}

	if affordability.GreaterThan(AffordabilityThreshold) {
		st.HomeStatus = domain.StatusRent
		st.LoanAmount = decimal.Zero
		st.MonthlyPayment = decimal.Zero
		s.rent()
	} else {
		switch st.HomeStatus {
		case domain.StatusRent:
			s.rent()
		case domain.StatusBuy:
			if err := s.buy(month); err != nil {
				return domain.MonthlyRecord{}, fmt.Errorf("scenario %d month %d: %w", s.id, month, err)
			}
		case domain.StatusMortgage:
			s.service()
		default:
			return domain.MonthlyRecord{}, fmt.Errorf("scenario %d month %d: unknown home status %s", s.id, month, st.HomeStatus)
		}
	}

	st.round()
	s.month++

	return domain.MonthlyRecord{
		ScenarioID:         s.id,
		Month:              month,
		PurchasePrice:      st.PurchasePrice,
		LoanAmount:         st.LoanAmount,
		HomePrice:          st.HomePrice,
		SavingsBalance:     st.SavingsBalance,
		MonthlyPayment:     st.MonthlyPayment,
		PurchaseMonth:      st.PurchaseMonth,
		AffordabilityRatio: affordability.Round(moneyScale),
		HomeStatus:         st.HomeStatus,
	}, nil
}

// affordabilityRatio is the fraction of the price that would have to be
// financed, insurance included, if the household bought this month.
// A shortfall above the table's terminal bound is priced at the terminal
// rate; the financed fraction alone already exceeds 1 in that case.
func (s *ScenarioSimulator) affordabilityRatio() (decimal.Decimal, error) {
	price := s.state.PurchasePrice
	shortfall := price.Add(s.params.PurchaseCosts).Sub(s.state.SavingsBalance)
	shortfallRatio := shortfall.Div(price).Mul(hundred)

	lmiRate := s.table.TerminalRate()
	if !shortfallRatio.GreaterThan(s.table.TerminalBound()) {
		rate, err := s.table.RateFor(shortfallRatio)
		if err != nil {
			return decimal.Zero, err
		}
		lmiRate = rate
	}

	return price.Mul(lmiRate).Add(shortfall).Div(price), nil
}

// decide draws this month's rent-or-buy decision
func (s *ScenarioSimulator) decide() domain.HomeStatus {
	if s.rng.Float64() < s.odds.BuyProbability {
		return domain.StatusBuy
	}
	return domain.StatusRent
}

func (s *ScenarioSimulator) rent() {
	st := &s.state
	st.SavingsBalance = st.SavingsBalance.Mul(s.savingsRate).Add(s.params.MonthlySavings)
	st.HomePrice = decimal.Zero
	st.PurchaseMonth = s.params.NeverPurchased()
}

// buy settles the purchase: savings go into the deposit and only this month's
// contribution is carried forward.
func (s *ScenarioSimulator) buy(month int) error {
	st := &s.state
	st.SavingsBalance = st.SavingsBalance.Mul(s.savingsRate)
	st.HomePrice = st.PurchasePrice
	if !st.HomePrice.IsPositive() {
		return fmt.Errorf("home price %s: %w", st.HomePrice, domain.ErrNumericDegeneracy)
	}

	lvr := st.HomePrice.Add(s.params.PurchaseCosts).Sub(st.SavingsBalance).Div(st.HomePrice).Mul(hundred)
	lmiRate, err := s.table.RateFor(lvr)
	if err != nil {
		return err
	}

	st.LoanAmount = st.HomePrice.
		Add(s.params.PurchaseCosts).
		Add(lmiRate.Mul(st.HomePrice)).
		Sub(st.SavingsBalance)
	st.SavingsBalance = s.params.MonthlySavings

	payment, err := MonthlyPayment(st.LoanAmount, s.params.AnnualInterestRate, s.params.LoanTermMonths)
	if err != nil {
		return err
	}
	st.MonthlyPayment = payment
	st.PurchaseMonth = month
	return nil
}

// service runs one month of ownership. Rent no longer paid is redirected into
// savings, and interest is charged on the loan net of savings (offset account).
func (s *ScenarioSimulator) service() {
	st := &s.state
	st.SavingsBalance = st.SavingsBalance.Mul(s.savingsRate).
		Add(s.params.MonthlySavings).
		Add(s.params.MonthlyRent).
		Sub(st.MonthlyPayment).
		Sub(s.params.MonthlyAdditionalCosts)

	st.HomePrice = st.HomePrice.Add(st.HomePrice.Mul(s.appreciation()))

	interest := st.LoanAmount.Sub(st.SavingsBalance).Mul(s.monthlyRate)
	principal := st.MonthlyPayment.Sub(interest)
	st.LoanAmount = st.LoanAmount.Sub(principal)
}

// appreciation draws one month of home price growth
func (s *ScenarioSimulator) appreciation() decimal.Decimal {
	a := s.params.Appreciation
	draw := s.rng.NormFloat64()*a.StdDev + a.Mean
	return decimal.NewFromFloat(draw).Div(decimal.NewFromInt(int64(a.PeriodsPerDraw)))
}

func (st *ScenarioState) round() {
	st.SavingsBalance = st.SavingsBalance.Round(moneyScale)
	st.LoanAmount = st.LoanAmount.Round(moneyScale)
	st.HomePrice = st.HomePrice.Round(moneyScale)
	st.MonthlyPayment = st.MonthlyPayment.Round(moneyScale)
}
