package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultLoanTermMonths is a 30-year mortgage
const DefaultLoanTermMonths = 360

// growthScale bounds the digits carried while compounding (1+r)^n
const growthScale = 24

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual rate to the nominal monthly rate
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(monthsPerYear)
}

// MonthlyPayment is the level payment that fully repays principal over
// termMonths at a fixed annual rate:
//
//	P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate repays principal in equal instalments.
func MonthlyPayment(principal, annualRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, domain.NewConfigurationError("loan_term_months", "must be positive, got %d", termMonths)
	}
	if annualRate.IsNegative() {
		return decimal.Zero, domain.NewConfigurationError("annual_interest_rate", "cannot be negative, got %s", annualRate)
	}

	n := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return principal.Div(n), nil
	}

	r := MonthlyRate(annualRate)
	growth := compound(one.Add(r), termMonths)
	denom := growth.Sub(one)
	if denom.IsZero() {
		return decimal.Zero, fmt.Errorf("annuity factor for rate %s over %d months: %w", annualRate, termMonths, domain.ErrNumericDegeneracy)
	}
	return principal.Mul(r).Mul(growth).Div(denom), nil
}

// compound raises base to a non-negative integer power by squaring
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(growthScale)
		}
		base = base.Mul(base).Round(growthScale)
		n >>= 1
	}
	return result
}
