package zillow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "test-host", WithBaseURL(srv.URL),
		WithRateLimit(rate.NewLimiter(rate.Inf, 1)))
}

func TestPropertySendsHeaders(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "test-host", r.Header.Get("x-rapidapi-host"))
		assert.Equal(t, "/pro/byaddress", r.URL.Path)
		assert.Equal(t, "123 Main St, Memphis, TN 38103", r.URL.Query().Get("propertyaddress"))
		w.Write([]byte(`{"propertyDetails": {"zpid": "111", "price": 150000}}`))
	})

	doc, err := c.Property(context.Background(), "123 Main St, Memphis, TN 38103")
	require.NoError(t, err)
	assert.Contains(t, doc, "propertyDetails")
}

func TestSearchFlattensResults(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/byaiprompt", r.URL.Path)
		prompt := r.URL.Query().Get("ai_search_prompt")
		assert.Contains(t, prompt, "Homes for sale in Memphis, TN")
		assert.Contains(t, prompt, "under $150000")
		w.Write([]byte(`{
			"searchResults": [
				{"property": {
					"zpid": 555,
					"address": {"streetAddress": "9 Oak Ave", "city": "Memphis", "state": "TN", "zipcode": "38104"},
					"price": {"value": 120000},
					"bedrooms": 3, "bathrooms": 2, "livingArea": 1300,
					"estimates": {"zestimate": 140000, "rentZestimate": 1250},
					"hdpUrl": "/homedetails/9-oak-ave/555_zpid/"
				}}
			]
		}`))
	})

	listings, err := c.Search(context.Background(), SearchCriteria{
		Location: "Memphis, TN",
		MaxPrice: 150000,
		MinBeds:  3,
	})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, "555", got.ZPID)
	assert.Equal(t, "9 Oak Ave", got.Address)
	assert.Equal(t, 120000.0, got.Price)
	assert.Equal(t, 1250.0, got.RentEst)
	assert.Equal(t, "https://www.zillow.com/homedetails/9-oak-ave/555_zpid/", got.URL)
}

func TestChart(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph_charts", r.URL.Path)
		assert.Equal(t, "zestimate_history", r.URL.Query().Get("which"))
		assert.Equal(t, "555", r.URL.Query().Get("byzpid"))
		w.Write([]byte(`{"DataPoints": {"homeValueChartData": []}}`))
	})

	doc, err := c.Chart(context.Background(), "555", "zestimate_history")
	require.NoError(t, err)
	assert.Contains(t, doc, "DataPoints")
}

func TestRetryOnTransientStatus(t *testing.T) {
	var calls int
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	})

	// Shrink backoff by running against a context with headroom.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Property(ctx, "addr")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "not subscribed"}`))
	})

	_, err := c.Property(context.Background(), "addr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPromptRendering(t *testing.T) {
	p := SearchCriteria{
		Location: "Jackson, TN",
		MaxPrice: 200000,
		MinBeds:  3,
		MinBaths: 2,
		Keywords: []string{"fixer upper"},
	}.Prompt()

	assert.Equal(t, "Homes for sale in Jackson, TN under $200000 with at least 3 bedrooms and 2 bathrooms, fixer upper", p)
}
