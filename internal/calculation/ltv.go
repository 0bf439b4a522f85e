package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// NoInsuranceBound is the LTV at or below which no mortgage insurance is charged
	NoInsuranceBound = decimal.NewFromInt(80)
	// FullInsuranceBound is the terminal LTV bound of every rate table
	FullInsuranceBound = decimal.NewFromInt(100)
)

// LTVRateTable prices lender's mortgage insurance by loan-to-value percentage.
// It is read-only once built and safe for concurrent use.
type LTVRateTable struct {
	brackets []domain.RateBracket
}

// NewLTVRateTable sorts the brackets by bound and checks the table's invariants:
// distinct bounds, non-negative rates, an 80% bracket with a zero rate as the
// lowest entry and a 100% bracket as the highest.
func NewLTVRateTable(brackets []domain.RateBracket) (*LTVRateTable, error) {
	if len(brackets) < 2 {
		return nil, domain.NewConfigurationError("rate_table", "need at least the 80%% and 100%% brackets, got %d", len(brackets))
	}

	sorted := append([]domain.RateBracket(nil), brackets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LTVBound.LessThan(sorted[j].LTVBound)
	})

	for i, b := range sorted {
		if b.Rate.IsNegative() {
			return nil, domain.NewConfigurationError("rate_table", "rate for %s%% cannot be negative", b.LTVBound)
		}
		if i > 0 && b.LTVBound.Equal(sorted[i-1].LTVBound) {
			return nil, domain.NewConfigurationError("rate_table", "duplicate bound %s%%", b.LTVBound)
		}
	}

	lowest, highest := sorted[0], sorted[len(sorted)-1]
	if !lowest.LTVBound.Equal(NoInsuranceBound) || !lowest.Rate.IsZero() {
		return nil, domain.NewConfigurationError("rate_table", "lowest bracket must be %s%% with a zero rate, got %s%% at %s", NoInsuranceBound, lowest.LTVBound, lowest.Rate)
	}
	if !highest.LTVBound.Equal(FullInsuranceBound) {
		return nil, domain.NewConfigurationError("rate_table", "highest bracket must be %s%%, got %s%%", FullInsuranceBound, highest.LTVBound)
	}

	return &LTVRateTable{brackets: sorted}, nil
}

// RateFor returns the insurance rate for an LTV percentage.
//
// The lookup is ceiling-biased: the answer is the rate of the first bracket
// whose bound is greater than or equal to the query. A query equal to a bound
// is priced at that bound's own rate, never the next tier up. A query below
// the lowest bound resolves to the lowest bracket. A query above the terminal
// bound is outside the table's domain.
func (t *LTVRateTable) RateFor(ltv decimal.Decimal) (decimal.Decimal, error) {
	if ltv.GreaterThan(t.TerminalBound()) {
		return decimal.Zero, &domain.ConfigurationError{
			Field:   "ltv",
			Message: fmt.Sprintf("%s%% is above the rate table's terminal bound of %s%%", ltv.StringFixed(4), t.TerminalBound()),
		}
	}
	for _, b := range t.brackets {
		if b.LTVBound.GreaterThanOrEqual(ltv) {
			return b.Rate, nil
		}
	}
	// unreachable: the terminal bound is >= ltv
	return t.TerminalRate(), nil
}

// TerminalBound is the highest bound in the table (always 100)
func (t *LTVRateTable) TerminalBound() decimal.Decimal {
	return t.brackets[len(t.brackets)-1].LTVBound
}

// TerminalRate is the rate of the overflow bracket
func (t *LTVRateTable) TerminalRate() decimal.Decimal {
	return t.brackets[len(t.brackets)-1].Rate
}

// MaxRate is the largest rate in the table
func (t *LTVRateTable) MaxRate() decimal.Decimal {
	highest := decimal.Zero
	for _, b := range t.brackets {
		if b.Rate.GreaterThan(highest) {
			highest = b.Rate
		}
	}
	return highest
}

// Brackets returns a copy of the sorted brackets
func (t *LTVRateTable) Brackets() []domain.RateBracket {
	return append([]domain.RateBracket(nil), t.brackets...)
}
