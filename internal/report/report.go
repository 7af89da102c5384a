// Package report renders structured analysis results as console text. All
// presentation lives here; the analysis packages return data only.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kwisener01/re-onmarket/internal/analyzer"
	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/internal/rental"
	"github.com/kwisener01/re-onmarket/internal/trend"
)

// printer groups digits the way US currency reads.
var printer = message.NewPrinter(language.AmericanEnglish)

func money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.0f", -v)
	}
	return printer.Sprintf("$%.0f", v)
}

// Property renders one analysis report.
func Property(rep analyzer.Report) string {
	var b strings.Builder

	if !rep.Success {
		fmt.Fprintf(&b, "Analysis failed: %s\n", rep.Error)
		return b.String()
	}

	p := rep.Property
	fmt.Fprintf(&b, "Property: %.0f bed / %.1f bath, %.0f sqft, built %d\n",
		p.Beds, p.Baths, p.Sqft, p.YearBuilt)
	fmt.Fprintf(&b, "List price: %s   Zestimate: %s   ARV: %s\n",
		money(p.ListPrice), money(p.Estimate), money(rep.Valuation.ARV))

	r := rep.Rehab
	fmt.Fprintf(&b, "Rehab (%s suggested, age %d): light %s / medium %s / heavy %s\n",
		r.Scope, r.PropertyAge, money(r.Light), money(r.Medium), money(r.Heavy))

	o := rep.Offers
	fmt.Fprintf(&b, "MAO: light %s / medium %s / heavy %s\n",
		money(o.Light.MAO), money(o.Medium.MAO), money(o.Heavy.MAO))
	fmt.Fprintf(&b, "Verdict: %s (best profit %s)\n", o.BestScenario, money(o.BestProfit))

	d := rep.Deal
	fmt.Fprintf(&b, "Deal score: %d/10 %s, %s (price/ARV %.2f)\n",
		d.Score, d.Label, d.Recommendation, d.PriceToARV)

	if rep.Keywords != nil && rep.Keywords.IsFixer {
		fmt.Fprintf(&b, "Fixer signals: %s\n", strings.Join(rep.Keywords.Keywords, ", "))
	}

	return b.String()
}

// Rental renders a rental cash-flow statement.
func Rental(r rental.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Rental at %s, rent %s/mo\n", money(r.PurchasePrice), money(r.MonthlyRent))
	fmt.Fprintf(&b, "Cash needed: %s (down %s + closing %s)\n",
		money(r.TotalCashIn), money(r.DownPayment), money(r.ClosingCosts))
	fmt.Fprintf(&b, "Monthly expenses: %s (mortgage %s)\n",
		money(r.Expenses.Total), money(r.Expenses.Mortgage))
	fmt.Fprintf(&b, "Cash flow: %s/mo (%s/yr)\n", money(r.MonthlyCashFlow), money(r.AnnualCashFlow))
	fmt.Fprintf(&b, "Cash-on-cash %.2f%%   Cap rate %.2f%%   Break-even rent %s\n",
		r.CashOnCashPct, r.CapRatePct, money(r.BreakEvenRent))

	rule := "FAIL"
	if r.OnePercentRule {
		rule = "PASS"
	}
	fmt.Fprintf(&b, "1%% rule: %s (target %s)\n", rule, money(r.OnePercentTarget))
	fmt.Fprintf(&b, "Grade %s: %s\n", r.Grade, r.Verdict)

	return b.String()
}

// Trend renders a valuation trend summary.
func Trend(a trend.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Value: %s (peak %s, trough %s)\n",
		money(a.CurrentValue), money(a.Peak), money(a.Trough))
	fmt.Fprintf(&b, "Change: 1yr %.2f%%, 6mo %.2f%%, total %.2f%% over %d days\n",
		a.OneYearChangePct, a.SixMonthChangePct, a.TotalChangePct, a.RangeDays)
	fmt.Fprintf(&b, "Volatility %.2f%%, %.2f%% from peak\n", a.VolatilityPct, a.FromPeakPct)
	fmt.Fprintf(&b, "Trend: %s. %s\n", a.Trend, a.Signal)

	return b.String()
}

// Results renders a ranked deal-finder summary table.
func Results(results *dealfinder.Results) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Deal search: %s (%d screened, %d analyzed, %d API calls)\n",
		results.Criteria.Location, len(results.Screened), len(results.Deals),
		results.APICalls)

	for i, deal := range results.Deals {
		rep := deal.Report
		if !rep.Success || rep.Deal == nil {
			fmt.Fprintf(&b, "%2d. %s: %s\n", i+1, deal.Snapshot.Address, rep.Error)
			continue
		}
		fmt.Fprintf(&b, "%2d. %s, %s: %s list, score %d/10 %s, %s\n",
			i+1, deal.Snapshot.Address, deal.Snapshot.City,
			money(rep.Property.ListPrice), rep.Deal.Score, rep.Deal.Label,
			rep.Offers.BestScenario)
		if deal.Trend != nil {
			fmt.Fprintf(&b, "    trend %s (1yr %.2f%%)\n", deal.Trend.Trend, deal.Trend.OneYearChangePct)
		}
		if deal.Rental != nil {
			fmt.Fprintf(&b, "    rental grade %s, cash flow %s/mo\n",
				deal.Rental.Grade, money(deal.Rental.MonthlyCashFlow))
		}
	}

	return b.String()
}
