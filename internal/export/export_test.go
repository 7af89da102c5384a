package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/kwisener01/re-onmarket/internal/analyzer"
	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/internal/rental"
	"github.com/kwisener01/re-onmarket/internal/trend"
)

func sampleResults() *dealfinder.Results {
	report := analyzer.Analyze(analyzer.Input{
		Raw: map[string]any{
			"zpid": "10", "price": 80000.0, "zestimate": 200000.0,
			"yearBuilt": 2015.0, "livingArea": 1100.0,
		},
		Description: "needs tlc",
	})
	failed := analyzer.Analyze(analyzer.Input{})

	rent := rental.Analyze(80000, 1200, rental.DefaultAssumptions())

	return &dealfinder.Results{
		Criteria:  dealfinder.Criteria{Location: "Memphis, TN"},
		StartedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Deals: []dealfinder.Deal{
			{
				Snapshot: analyzer.Snapshot{
					Address: "10 Test St", City: "Memphis", State: "TN", Zip: "38103",
				},
				Report: report,
				Trend:  &trend.Analysis{Trend: "Stable", OneYearChangePct: 2.5},
				Rental: &rent,
			},
			{Report: failed}, // skipped
		},
	}
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(sampleResults())

	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, "2026-08-30", row.DatePulled)
	assert.Equal(t, "Memphis, TN", row.Location)
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, "10 Test St", row.Address)
	assert.Equal(t, 80000.0, row.ListPrice)
	assert.Equal(t, 190000.0, row.ARV) // 200000 * 0.95
	assert.Equal(t, "YES", row.IsFixer)
	assert.Contains(t, row.Keywords, "tlc")
	assert.Equal(t, "Stable", row.PriceTrend)
	assert.Equal(t, 2.5, row.OneYearChange)
	assert.Greater(t, row.MonthlyRent, 0.0)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.xlsx")

	require.NoError(t, WriteWorkbook(path, sampleResults()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Memphis, TN", sheet.Name)
	require.Len(t, sheet.Rows, 2) // header + one deal

	require.Len(t, sheet.Rows[0].Cells, len(Headers))
	assert.Equal(t, "Date Pulled", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "10 Test St", sheet.Rows[1].Cells[3].Value)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Memphis  TN", sheetName("Memphis/ TN"))
	assert.Equal(t, "Deals", sheetName(""))
	assert.Len(t, sheetName("a very long location name that exceeds the sheet limit"), 31)
}

type mockNotion struct {
	mock.Mock
}

func (m *mockNotion) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.Page), args.Error(1)
}

func TestNotionExport(t *testing.T) {
	mc := &mockNotion{}
	mc.On("CreatePage", mock.Anything, mock.MatchedBy(func(req *notionapi.PageCreateRequest) bool {
		title, ok := req.Properties["Address"].(notionapi.TitleProperty)
		return ok && len(title.Title) == 1 && title.Title[0].Text.Content == "10 Test St"
	})).Return(&notionapi.Page{}, nil).Once()

	sink := NotionSink{Client: mc, DatabaseID: "db-1"}
	require.NoError(t, sink.Export(context.Background(), sampleResults()))

	mc.AssertExpectations(t)
}

func TestNotionExportError(t *testing.T) {
	mc := &mockNotion{}
	mc.On("CreatePage", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	sink := NotionSink{Client: mc, DatabaseID: "db-1"}
	err := sink.Export(context.Background(), sampleResults())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 Test St")
}
