package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
)

// WriteWorkbook writes one sheet of ranked deals to an xlsx file at path,
// sheet named for the search location.
func WriteWorkbook(path string, results *dealfinder.Results) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(sheetName(results.Criteria.Location))
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range Headers {
		header.AddCell().Value = h
	}

	for _, row := range BuildRows(results) {
		appendRow(sheet, row)
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}

	zap.L().Info("export: workbook written",
		zap.String("path", path),
		zap.Int("rows", len(results.Deals)))
	return nil
}

func appendRow(sheet *xlsx.Sheet, row Row) {
	r := sheet.AddRow()

	r.AddCell().Value = row.DatePulled
	r.AddCell().Value = row.Location
	r.AddCell().SetInt(row.Rank)
	r.AddCell().Value = row.Address
	r.AddCell().Value = row.City
	r.AddCell().Value = row.State
	r.AddCell().Value = row.Zip
	r.AddCell().SetFloat(row.ListPrice)
	r.AddCell().SetFloat(row.Beds)
	r.AddCell().SetFloat(row.Baths)
	r.AddCell().SetFloat(row.Sqft)
	r.AddCell().SetFloatWithFormat(row.PricePerSqft, "0.00")
	r.AddCell().SetFloat(row.ARV)
	r.AddCell().SetFloat(row.MAOLight)
	r.AddCell().SetFloat(row.MAOMedium)
	r.AddCell().SetFloat(row.MAOHeavy)
	r.AddCell().SetFloat(row.ProfitLight)
	r.AddCell().SetFloat(row.ProfitMedium)
	r.AddCell().SetFloat(row.ProfitHeavy)
	r.AddCell().Value = row.BestScenario
	r.AddCell().SetFloat(row.BestProfit)
	r.AddCell().Value = row.IsFixer
	r.AddCell().Value = row.Keywords
	r.AddCell().SetInt(row.DealScore)
	r.AddCell().Value = row.DealGrade
	r.AddCell().Value = row.Recommend
	r.AddCell().SetFloat(row.MonthlyRent)
	r.AddCell().SetFloat(row.CashFlow)
	r.AddCell().SetFloatWithFormat(row.CashOnCash, "0.00")
	r.AddCell().SetFloatWithFormat(row.CapRate, "0.00")
	r.AddCell().Value = row.PriceTrend
	r.AddCell().SetFloatWithFormat(row.OneYearChange, "0.00")
}

// sheetName turns a search location into a legal sheet name: no slashes or
// other reserved characters, at most 31 characters.
func sheetName(location string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '?', '*', '[', ']', ':':
			return ' '
		}
		return r
	}, location)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Deals"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
