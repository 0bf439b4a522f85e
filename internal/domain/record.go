package domain

import (
	"github.com/shopspring/decimal"
)

// RateBracket maps an LTV percentage bound to a mortgage insurance rate
type RateBracket struct {
	LTVBound decimal.Decimal `yaml:"ltv_bound" json:"ltvBound"`
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
}

// CalibrationResult is the per-month decision probability shared by every scenario of a run
type CalibrationResult struct {
	BuyProbability  float64 `json:"buyProbability"`
	RentProbability float64 `json:"rentProbability"`
}

// MonthlyRecord is the post-step state of one scenario at the end of one month
type MonthlyRecord struct {
	ScenarioID         int             `json:"scenarioId"`
	Month              int             `json:"month"`
	PurchasePrice      decimal.Decimal `json:"purchasePrice"`
	LoanAmount         decimal.Decimal `json:"loanAmount"`
	HomePrice          decimal.Decimal `json:"homePrice"`
	SavingsBalance     decimal.Decimal `json:"savingsBalance"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	PurchaseMonth      int             `json:"purchaseMonth"`
	AffordabilityRatio decimal.Decimal `json:"affordabilityRatio"`
	HomeStatus         HomeStatus      `json:"homeStatus"`
}

// NetValue is the household position at the end of the month: property plus savings less debt
func (r MonthlyRecord) NetValue() decimal.Decimal {
	return r.HomePrice.Add(r.SavingsBalance).Sub(r.LoanAmount)
}

// Purchased reports whether the scenario has bought by this month
func (r MonthlyRecord) Purchased() bool {
	return r.HomeStatus.Owned()
}

// SimulationResult is the finished result set of one batch run
type SimulationResult struct {
	HorizonMonths int               `json:"horizonMonths"`
	NumScenarios  int               `json:"numScenarios"`
	Seed          int64             `json:"seed"`
	Calibration   CalibrationResult `json:"calibration"`
	Records       []MonthlyRecord   `json:"records"`
}

// FinalRecords returns the last record of every scenario, in scenario order
func (sr *SimulationResult) FinalRecords() []MonthlyRecord {
	finals := make([]MonthlyRecord, 0, sr.NumScenarios)
	for _, rec := range sr.Records {
		if rec.Month == sr.HorizonMonths {
			finals = append(finals, rec)
		}
	}
	return finals
}
