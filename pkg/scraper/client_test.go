package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract_content", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "https://www.zillow.com/homedetails/555_zpid/", r.URL.Query().Get("url"))
		w.Write([]byte(`{"status": "ok", "text": "Investor special, cash only."}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "test-host", WithBaseURL(srv.URL),
		WithRateLimit(rate.NewLimiter(rate.Inf, 1)))

	text, err := c.Extract(context.Background(), "https://www.zillow.com/homedetails/555_zpid/")
	require.NoError(t, err)
	assert.Equal(t, "Investor special, cash only.", text)
}

func TestExtractErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("k", "h", WithBaseURL(srv.URL),
		WithRateLimit(rate.NewLimiter(rate.Inf, 1)))

	_, err := c.Extract(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
