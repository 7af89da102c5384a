package export

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/pkg/notion"
)

// NotionSink appends deal rows as pages of a Notion database.
type NotionSink struct {
	Client     notion.Client
	DatabaseID string
}

// Export writes every successful deal to the configured database. The first
// failure aborts the export.
func (s NotionSink) Export(ctx context.Context, results *dealfinder.Results) error {
	rows := BuildRows(results)

	for _, row := range rows {
		if _, err := s.Client.CreatePage(ctx, s.pageRequest(row)); err != nil {
			return eris.Wrapf(err, "export: notion page for %s", row.Address)
		}
	}

	zap.L().Info("export: notion pages created",
		zap.String("database", s.DatabaseID),
		zap.Int("pages", len(rows)))
	return nil
}

func (s NotionSink) pageRequest(row Row) *notionapi.PageCreateRequest {
	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.DatabaseID),
		},
		Properties: notionapi.Properties{
			"Address": notionapi.TitleProperty{
				Title: richText(row.Address),
			},
			"City":            notionapi.RichTextProperty{RichText: richText(row.City)},
			"State":           notionapi.RichTextProperty{RichText: richText(row.State)},
			"ZIP":             notionapi.RichTextProperty{RichText: richText(row.Zip)},
			"Date Pulled":     notionapi.RichTextProperty{RichText: richText(row.DatePulled)},
			"Search Location": notionapi.RichTextProperty{RichText: richText(row.Location)},
			"Rank":            notionapi.NumberProperty{Number: float64(row.Rank)},
			"List Price":      notionapi.NumberProperty{Number: row.ListPrice},
			"Zestimate (ARV)": notionapi.NumberProperty{Number: row.ARV},
			"Best Profit":     notionapi.NumberProperty{Number: row.BestProfit},
			"Deal Score":      notionapi.NumberProperty{Number: float64(row.DealScore)},
			"Best Scenario": notionapi.SelectProperty{
				Select: notionapi.Option{Name: row.BestScenario},
			},
			"Deal Grade": notionapi.SelectProperty{
				Select: notionapi.Option{Name: row.DealGrade},
			},
			"Is Fixer?": notionapi.SelectProperty{
				Select: notionapi.Option{Name: row.IsFixer},
			},
			"Recommendation": notionapi.RichTextProperty{RichText: richText(row.Recommend)},
			"Keywords Found": notionapi.RichTextProperty{RichText: richText(row.Keywords)},
			"Price Trend":    notionapi.RichTextProperty{RichText: richText(row.PriceTrend)},
			"1-Year Change %": notionapi.NumberProperty{
				Number: row.OneYearChange,
			},
			"Cash-on-Cash %": notionapi.NumberProperty{Number: row.CashOnCash},
			"Cap Rate %":     notionapi.NumberProperty{Number: row.CapRate},
			"Summary": notionapi.RichTextProperty{
				RichText: richText(fmt.Sprintf("%s at $%.0f, %s", row.Address, row.ListPrice, row.BestScenario)),
			},
		},
	}
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: s}},
	}
}
