// Package rental models buy-and-hold economics for a single property:
// amortized mortgage, operating expense breakdown, cash flow, cash-on-cash
// return, cap rate, and a letter grade.
package rental

import (
	"math"

	"go.uber.org/zap"
)

// Assumptions are the financing and operating inputs. Percentage fields are
// whole percents (20 means 20%).
type Assumptions struct {
	DownPaymentPct   float64 `json:"down_payment_pct"`
	InterestRate     float64 `json:"interest_rate"`
	LoanTermYears    int     `json:"loan_term_years"`
	ClosingCostsPct  float64 `json:"closing_costs_pct"`
	PropertyTaxPct   float64 `json:"property_tax_pct"`
	InsuranceMonthly float64 `json:"insurance_monthly"`
	HOAMonthly       float64 `json:"hoa_monthly"`
	MaintenancePct   float64 `json:"maintenance_pct"`
	VacancyRatePct   float64 `json:"vacancy_rate_pct"`
	ManagementPct    float64 `json:"property_mgmt_pct"`
}

// DefaultAssumptions returns the standard underwriting assumptions.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DownPaymentPct:   20,
		InterestRate:     7.0,
		LoanTermYears:    30,
		ClosingCostsPct:  3,
		PropertyTaxPct:   1.2,
		InsuranceMonthly: 150,
		HOAMonthly:       0,
		MaintenancePct:   1.0,
		VacancyRatePct:   5,
		ManagementPct:    10,
	}
}

// Expenses is the monthly operating cost breakdown.
type Expenses struct {
	Mortgage    float64 `json:"mortgage"`
	PropertyTax float64 `json:"property_tax"`
	Insurance   float64 `json:"insurance"`
	HOA         float64 `json:"hoa"`
	Maintenance float64 `json:"maintenance"`
	Management  float64 `json:"management"`
	Total       float64 `json:"total"`
}

// Result is the full rental cash-flow statement with grade.
type Result struct {
	PurchasePrice    float64  `json:"purchase_price"`
	MonthlyRent      float64  `json:"monthly_rent"`
	DownPayment      float64  `json:"down_payment"`
	LoanAmount       float64  `json:"loan_amount"`
	ClosingCosts     float64  `json:"closing_costs"`
	TotalCashIn      float64  `json:"total_cash_invested"`
	Expenses         Expenses `json:"monthly_expenses"`
	VacancyLoss      float64  `json:"vacancy_loss"`
	EffectiveIncome  float64  `json:"effective_income"`
	MonthlyCashFlow  float64  `json:"monthly_cash_flow"`
	AnnualCashFlow   float64  `json:"annual_cash_flow"`
	CashOnCashPct    float64  `json:"cash_on_cash_pct"`
	CapRatePct       float64  `json:"cap_rate_pct"`
	OnePercentRule   bool     `json:"one_percent_rule"`
	OnePercentTarget float64  `json:"one_percent_target"`
	BreakEvenRent    float64  `json:"break_even_rent"`
	RentToPricePct   float64  `json:"rent_to_price_pct"`
	Grade            string   `json:"grade"`
	Verdict          string   `json:"verdict"`
}

// Analyze computes the cash-flow statement for a purchase at the given price
// and monthly rent under the supplied assumptions.
func Analyze(price, rent float64, a Assumptions) Result {
	downPayment := price * a.DownPaymentPct / 100
	loan := price - downPayment
	closing := price * a.ClosingCostsPct / 100
	invested := downPayment + closing

	mortgage := mortgagePayment(loan, a.InterestRate, a.LoanTermYears)

	exp := Expenses{
		Mortgage:    mortgage,
		PropertyTax: price * a.PropertyTaxPct / 100 / 12,
		Insurance:   a.InsuranceMonthly,
		HOA:         a.HOAMonthly,
		Maintenance: price * a.MaintenancePct / 100 / 12,
		Management:  rent * a.ManagementPct / 100,
	}
	exp.Total = exp.Mortgage + exp.PropertyTax + exp.Insurance +
		exp.HOA + exp.Maintenance + exp.Management

	vacancyLoss := rent * a.VacancyRatePct / 100
	effective := rent - vacancyLoss
	monthlyCF := effective - exp.Total
	annualCF := monthlyCF * 12

	var coc float64
	if invested > 0 {
		coc = annualCF / invested * 100
	}

	// NOI excludes debt service.
	annualNOI := (effective - (exp.Total - exp.Mortgage)) * 12
	var capRate float64
	if price > 0 {
		capRate = annualNOI / price * 100
	}

	var breakEven float64
	if occ := 1 - a.VacancyRatePct/100; occ > 0 {
		breakEven = exp.Total / occ
	}

	var rentToPrice float64
	if price > 0 {
		rentToPrice = rent / price * 100
	}

	grade, verdict := gradeRental(coc, capRate)

	zap.L().Debug("rental: analyzed",
		zap.Float64("price", price),
		zap.Float64("rent", rent),
		zap.Float64("cash_on_cash", coc),
		zap.String("grade", grade))

	return Result{
		PurchasePrice:    price,
		MonthlyRent:      rent,
		DownPayment:      math.Round(downPayment),
		LoanAmount:       math.Round(loan),
		ClosingCosts:     math.Round(closing),
		TotalCashIn:      math.Round(invested),
		Expenses:         roundExpenses(exp),
		VacancyLoss:      math.Round(vacancyLoss),
		EffectiveIncome:  math.Round(effective),
		MonthlyCashFlow:  math.Round(monthlyCF),
		AnnualCashFlow:   math.Round(annualCF),
		CashOnCashPct:    round2(coc),
		CapRatePct:       round2(capRate),
		OnePercentRule:   rent >= price*0.01,
		OnePercentTarget: math.Round(price * 0.01),
		BreakEvenRent:    math.Round(breakEven),
		RentToPricePct:   round2(rentToPrice),
		Grade:            grade,
		Verdict:          verdict,
	}
}

// mortgagePayment is the standard fixed-rate annuity payment. A zero rate
// falls back to straight-line principal.
func mortgagePayment(loan, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if n == 0 {
		return 0
	}
	monthlyRate := annualRate / 12 / 100
	if monthlyRate == 0 {
		return loan / n
	}
	factor := math.Pow(1+monthlyRate, n)
	return loan * monthlyRate * factor / (factor - 1)
}

// gradeRental applies conjunctive thresholds top tier down.
func gradeRental(cashOnCash, capRate float64) (grade, verdict string) {
	switch {
	case cashOnCash >= 12 && capRate >= 8:
		return "A+", "Exceptional cash flow investment"
	case cashOnCash >= 8 && capRate >= 6:
		return "A", "Strong rental investment"
	case cashOnCash >= 5 && capRate >= 4:
		return "B", "Solid rental with decent returns"
	case cashOnCash >= 0:
		return "C", "Marginal returns, negotiate harder"
	default:
		return "D", "Negative cash flow, avoid at this price"
	}
}

func roundExpenses(e Expenses) Expenses {
	return Expenses{
		Mortgage:    math.Round(e.Mortgage),
		PropertyTax: math.Round(e.PropertyTax),
		Insurance:   math.Round(e.Insurance),
		HOA:         math.Round(e.HOA),
		Maintenance: math.Round(e.Maintenance),
		Management:  math.Round(e.Management),
		Total:       math.Round(e.Total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
