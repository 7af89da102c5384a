// Package export renders deal-finder results into external sinks: an xlsx
// workbook and a Notion database.
package export

import (
	"strings"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
)

// Headers is the fixed column layout shared by every sink, in order.
var Headers = []string{
	"Date Pulled",
	"Search Location",
	"Rank",
	"Address",
	"City",
	"State",
	"ZIP",
	"List Price",
	"Beds",
	"Baths",
	"Sqft",
	"Price/Sqft",
	"Zestimate (ARV)",
	"MAO Light ($25/sqft)",
	"MAO Medium ($40/sqft)",
	"MAO Heavy ($60/sqft)",
	"Profit Light",
	"Profit Medium",
	"Profit Heavy",
	"Best Scenario",
	"Best Profit",
	"Is Fixer?",
	"Keywords Found",
	"Deal Score",
	"Deal Grade",
	"Recommendation",
	"Monthly Rent",
	"Cash Flow",
	"Cash-on-Cash %",
	"Cap Rate %",
	"Price Trend",
	"1-Year Change %",
}

// Row is one exported property, one value per header column.
type Row struct {
	DatePulled    string
	Location      string
	Rank          int
	Address       string
	City          string
	State         string
	Zip           string
	ListPrice     float64
	Beds          float64
	Baths         float64
	Sqft          float64
	PricePerSqft  float64
	ARV           float64
	MAOLight      float64
	MAOMedium     float64
	MAOHeavy      float64
	ProfitLight   float64
	ProfitMedium  float64
	ProfitHeavy   float64
	BestScenario  string
	BestProfit    float64
	IsFixer       string
	Keywords      string
	DealScore     int
	DealGrade     string
	Recommend     string
	MonthlyRent   float64
	CashFlow      float64
	CashOnCash    float64
	CapRate       float64
	PriceTrend    string
	OneYearChange float64
}

// BuildRows flattens workflow results into sink rows, ranked in result
// order. Unsuccessful reports are skipped.
func BuildRows(results *dealfinder.Results) []Row {
	date := results.StartedAt.Format("2006-01-02")

	rows := make([]Row, 0, len(results.Deals))
	for _, deal := range results.Deals {
		rep := deal.Report
		if !rep.Success || rep.Property == nil {
			continue
		}

		row := Row{
			DatePulled: date,
			Location:   results.Criteria.Location,
			Rank:       len(rows) + 1,
			Address:    deal.Snapshot.Address,
			City:       deal.Snapshot.City,
			State:      deal.Snapshot.State,
			Zip:        deal.Snapshot.Zip,
			ListPrice:  rep.Property.ListPrice,
			Beds:       rep.Property.Beds,
			Baths:      rep.Property.Baths,
			Sqft:       rep.Property.Sqft,
		}
		if row.Sqft > 0 {
			row.PricePerSqft = row.ListPrice / row.Sqft
		}

		if rep.Offers != nil {
			row.ARV = rep.Offers.ARV
			row.MAOLight = rep.Offers.Light.MAO
			row.MAOMedium = rep.Offers.Medium.MAO
			row.MAOHeavy = rep.Offers.Heavy.MAO
			row.ProfitLight = rep.Offers.Light.Profit
			row.ProfitMedium = rep.Offers.Medium.Profit
			row.ProfitHeavy = rep.Offers.Heavy.Profit
			row.BestScenario = rep.Offers.BestScenario
			row.BestProfit = rep.Offers.BestProfit
		}

		row.IsFixer = "NO"
		if rep.Keywords != nil {
			if rep.Keywords.IsFixer {
				row.IsFixer = "YES"
			}
			row.Keywords = strings.Join(rep.Keywords.Keywords, ", ")
		}

		if rep.Deal != nil {
			row.DealScore = rep.Deal.Score
			row.DealGrade = rep.Deal.Label
			row.Recommend = rep.Deal.Recommendation
		}

		if deal.Rental != nil {
			row.MonthlyRent = deal.Rental.MonthlyRent
			row.CashFlow = deal.Rental.MonthlyCashFlow
			row.CashOnCash = deal.Rental.CashOnCashPct
			row.CapRate = deal.Rental.CapRatePct
		}

		if deal.Trend != nil {
			row.PriceTrend = deal.Trend.Trend
			row.OneYearChange = deal.Trend.OneYearChangePct
		}

		rows = append(rows, row)
	}
	return rows
}
