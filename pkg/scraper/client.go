// Package scraper provides a client for an AI web-scraper API on RapidAPI,
// used to pull listing text straight off a property page when the listing
// APIs have none.
package scraper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the scraper operations.
type Client interface {
	// Extract fetches a page and returns its extracted text content.
	Extract(ctx context.Context, pageURL string) (string, error)
}

// Option configures the scraper client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default one-request-per-second limiter.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	apiKey  string
	host    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a scraper client for the given RapidAPI key and host.
func NewClient(apiKey, host string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		host:    host,
		baseURL: "https://" + host,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type extractEnvelope struct {
	Status string `json:"status"`
	Text   string `json:"text"`
}

func (c *httpClient) Extract(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "scraper: rate limit wait")
	}

	reqURL := c.baseURL + "/extract_content?url=" + url.QueryEscape(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "scraper: create request")
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "scraper: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "scraper: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("scraper: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var env extractEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", eris.Wrap(err, "scraper: unmarshal response")
	}
	return env.Text, nil
}
