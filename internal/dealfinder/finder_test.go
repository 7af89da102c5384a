package dealfinder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisener01/re-onmarket/internal/describe"
	"github.com/kwisener01/re-onmarket/pkg/zillow"
)

type fakeZillow struct {
	listings   []zillow.Listing
	searchErr  error
	properties map[string]map[string]any
	charts     map[string]map[string]any

	searchCalls, propertyCalls, chartCalls int
}

func (f *fakeZillow) Search(ctx context.Context, c zillow.SearchCriteria) ([]zillow.Listing, error) {
	f.searchCalls++
	return f.listings, f.searchErr
}

func (f *fakeZillow) Property(ctx context.Context, address string) (map[string]any, error) {
	f.propertyCalls++
	return f.properties[address], nil
}

func (f *fakeZillow) Chart(ctx context.Context, zpid, which string) (map[string]any, error) {
	f.chartCalls++
	return f.charts[zpid], nil
}

type fakeDescriber struct {
	text string
}

func (f fakeDescriber) Description(ctx context.Context, prop describe.Property) string {
	return f.text
}

func listing(zpid string, price, sqft float64) zillow.Listing {
	return zillow.Listing{
		ZPID: zpid, Address: zpid + " Test St", City: "Memphis",
		State: "TN", Zip: "38103",
		Price: price, Beds: 3, Baths: 2, Sqft: sqft,
	}
}

func chartDoc(points ...[2]float64) map[string]any {
	raw := make([]any, 0, len(points))
	for _, p := range points {
		raw = append(raw, map[string]any{"x": p[0], "y": p[1]})
	}
	return map[string]any{
		"DataPoints": map[string]any{
			"homeValueChartData": []any{
				map[string]any{"name": "This home", "points": raw},
			},
		},
	}
}

func TestScreenFiltersAndSorts(t *testing.T) {
	listings := []zillow.Listing{
		listing("a", 150000, 1000), // 150/sqft
		listing("b", 0, 1000),      // dropped: no price
		listing("c", 90000, 1200),  // 75/sqft, cheapest
		listing("d", 100000, 0),    // dropped: no sqft
		listing("e", 120000, 1000), // 120/sqft
	}

	screened := screen(listings, 2)

	require.Len(t, screened, 2)
	assert.Equal(t, "c", screened[0].Snapshot.ZPID)
	assert.Equal(t, "e", screened[1].Snapshot.ZPID)
	assert.InDelta(t, 75.0, screened[0].PricePerSqft, 0.01)
}

func TestFindDealsWorkflow(t *testing.T) {
	now := float64(time.Now().UnixMilli())
	yearAgo := now - 400*24*60*60*1000

	z := &fakeZillow{
		listings: []zillow.Listing{
			listing("10", 80000, 1100),
			listing("20", 200000, 1000),
		},
		properties: map[string]map[string]any{
			"10 Test St, Memphis, TN 38103": {
				"zpid": "10", "price": 80000.0, "zestimate": 200000.0,
				"yearBuilt": 2015.0, "livingArea": 1100.0,
				"rentZestimate": 1400.0,
			},
			"20 Test St, Memphis, TN 38103": {
				"zpid": "20", "price": 200000.0, "zestimate": 205000.0,
				"yearBuilt": 1960.0, "livingArea": 1000.0,
			},
		},
		charts: map[string]map[string]any{
			"10": chartDoc([2]float64{now, 200000}, [2]float64{yearAgo, 180000}),
		},
	}

	f := New(z, fakeDescriber{text: "needs tlc"}, Config{
		ScreenCount: 10, AnalyzeCount: 2, MinDealScore: 6,
	})

	out, err := f.FindDeals(context.Background(), Criteria{Location: "Memphis, TN"})
	require.NoError(t, err)

	assert.Equal(t, 1, z.searchCalls)
	assert.Equal(t, 2, z.propertyCalls)
	require.Len(t, out.Deals, 2)

	// Sorted by score: the 40%-of-ARV property first.
	best := out.Deals[0]
	assert.Equal(t, "10", best.Report.Property.ZPID)
	assert.GreaterOrEqual(t, best.Report.Deal.Score, 6)
	assert.True(t, best.Report.Keywords.IsFixer)

	// Deep dive ran for the qualifying deal only.
	assert.Equal(t, 1, z.chartCalls)
	require.NotNil(t, best.Trend)
	require.NotNil(t, best.Rental)
	assert.Nil(t, out.Deals[1].Trend)

	// search + 2 property + 2 describe + 1 chart
	assert.Equal(t, 6, out.APICalls)
	assert.False(t, out.FinishedAt.IsZero())
}

func TestFindDealsSearchError(t *testing.T) {
	z := &fakeZillow{searchErr: assert.AnError}
	f := New(z, nil, Config{})

	_, err := f.FindDeals(context.Background(), Criteria{Location: "x"})
	require.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	f := New(&fakeZillow{}, nil, Config{})

	assert.Equal(t, defaultScreenCount, f.cfg.ScreenCount)
	assert.Equal(t, defaultAnalyzeCount, f.cfg.AnalyzeCount)
	assert.Equal(t, defaultMinDealScore, f.cfg.MinDealScore)
}
