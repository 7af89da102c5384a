package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kwisener01/re-onmarket/internal/analyzer"
	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/internal/rental"
	"github.com/kwisener01/re-onmarket/internal/trend"
)

func TestMoneyGroupsDigits(t *testing.T) {
	assert.Equal(t, "$1,234,568", money(1234567.8))
	assert.Equal(t, "-$8,825", money(-8825))
	assert.Equal(t, "$0", money(0))
}

func TestPropertyReport(t *testing.T) {
	rep := analyzer.Analyze(analyzer.Input{
		Raw: map[string]any{
			"price": 73500.0, "zestimate": 95000.0,
			"yearBuilt": 1975.0, "livingArea": 1200.0,
		},
		Description: "needs tlc",
	})

	out := Property(rep)

	assert.Contains(t, out, "$90,250")
	assert.Contains(t, out, "Not a Deal")
	assert.Contains(t, out, "Fixer signals")
}

func TestPropertyReportFailure(t *testing.T) {
	out := Property(analyzer.Report{Success: false, Error: "Unable to fetch property data"})
	assert.Contains(t, out, "Unable to fetch property data")
}

func TestRentalReport(t *testing.T) {
	out := Rental(rental.Analyze(100000, 1200, rental.DefaultAssumptions()))

	assert.Contains(t, out, "$100,000")
	assert.Contains(t, out, "1% rule: PASS")
	assert.Contains(t, out, "Grade ")
}

func TestTrendReport(t *testing.T) {
	out := Trend(trend.Analysis{
		CurrentValue: 100000, Peak: 120000, Trough: 80000,
		OneYearChangePct: -16.67, Trend: "DECLINING",
		Signal: "Potential distressed deal, values falling",
	})

	assert.Contains(t, out, "DECLINING")
	assert.Contains(t, out, "-16.67")
}

func TestResultsReport(t *testing.T) {
	rep := analyzer.Analyze(analyzer.Input{
		Raw: map[string]any{"price": 80000.0, "zestimate": 200000.0,
			"yearBuilt": 2015.0, "livingArea": 1100.0},
	})

	out := Results(&dealfinder.Results{
		Criteria: dealfinder.Criteria{Location: "Memphis, TN"},
		Deals: []dealfinder.Deal{{
			Snapshot: analyzer.Snapshot{Address: "10 Test St", City: "Memphis"},
			Report:   rep,
		}},
		APICalls: 3,
	})

	assert.Contains(t, out, "Memphis, TN")
	assert.Contains(t, out, "10 Test St")
	assert.Contains(t, out, "score 8/10")
}
