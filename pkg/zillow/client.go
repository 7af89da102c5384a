// Package zillow provides a client for the Zillow listing API on RapidAPI.
package zillow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Zillow listing operations.
type Client interface {
	// Property fetches the full detail record for a street address. The
	// response shape varies by listing type, so it is returned raw for the
	// reconciler.
	Property(ctx context.Context, address string) (map[string]any, error)
	// Search runs an AI-prompt search built from structured criteria and
	// returns the matching listings.
	Search(ctx context.Context, criteria SearchCriteria) ([]Listing, error)
	// Chart fetches a valuation history chart document for a zpid. Known
	// chart names are zestimate_history and rent_zestimate_history.
	Chart(ctx context.Context, zpid, which string) (map[string]any, error)
}

// SearchCriteria are the structured inputs folded into the search prompt.
type SearchCriteria struct {
	Location string
	MaxPrice float64
	MinBeds  int
	MinBaths int
	Keywords []string
}

// Prompt renders the criteria as the natural-language query the search
// endpoint expects.
func (c SearchCriteria) Prompt() string {
	p := "Homes for sale in " + c.Location
	if c.MaxPrice > 0 {
		p += fmt.Sprintf(" under $%.0f", c.MaxPrice)
	}
	if c.MinBeds > 0 {
		p += fmt.Sprintf(" with at least %d bedrooms", c.MinBeds)
	}
	if c.MinBaths > 0 {
		p += fmt.Sprintf(" and %d bathrooms", c.MinBaths)
	}
	for _, kw := range c.Keywords {
		p += ", " + kw
	}
	return p
}

// Listing is one search result, flattened from the nested response.
type Listing struct {
	ZPID      string  `json:"zpid"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zipcode"`
	Price     float64 `json:"price"`
	Beds      float64 `json:"beds"`
	Baths     float64 `json:"baths"`
	Sqft      float64 `json:"sqft"`
	Zestimate float64 `json:"zestimate"`
	RentEst   float64 `json:"rent_zestimate"`
	URL       string  `json:"url"`
}

// Option configures the Zillow client.
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

// NewClient creates a Zillow client for the given RapidAPI key and host.
func NewClient(apiKey, host string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		host:    host,
		baseURL: "https://" + host,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Property(ctx context.Context, address string) (map[string]any, error) {
	reqURL := c.baseURL + "/pro/byaddress?propertyaddress=" + url.QueryEscape(address)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "zillow: fetch property")
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, eris.Wrap(err, "zillow: unmarshal property")
	}
	return doc, nil
}

type searchEnvelope struct {
	Results []struct {
		Property searchProperty `json:"property"`
	} `json:"searchResults"`
}

type searchProperty struct {
	ZPID    json.Number `json:"zpid"`
	Address struct {
		StreetAddress string `json:"streetAddress"`
		City          string `json:"city"`
		State         string `json:"state"`
		Zipcode       string `json:"zipcode"`
	} `json:"address"`
	Price struct {
		Value float64 `json:"value"`
	} `json:"price"`
	Bedrooms   float64 `json:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms"`
	LivingArea float64 `json:"livingArea"`
	Estimates  struct {
		Zestimate     float64 `json:"zestimate"`
		RentZestimate float64 `json:"rentZestimate"`
	} `json:"estimates"`
	HdpURL string `json:"hdpUrl"`
}

func (c *httpClient) Search(ctx context.Context, criteria SearchCriteria) ([]Listing, error) {
	reqURL := c.baseURL + "/search/byaiprompt?ai_search_prompt=" +
		url.QueryEscape(criteria.Prompt()) + "&page=1&sortOrder=Homes_for_you"

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "zillow: search")
	}

	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, eris.Wrap(err, "zillow: unmarshal search")
	}

	listings := make([]Listing, 0, len(env.Results))
	for _, r := range env.Results {
		p := r.Property
		listings = append(listings, Listing{
			ZPID:      p.ZPID.String(),
			Address:   p.Address.StreetAddress,
			City:      p.Address.City,
			State:     p.Address.State,
			Zip:       p.Address.Zipcode,
			Price:     p.Price.Value,
			Beds:      p.Bedrooms,
			Baths:     p.Bathrooms,
			Sqft:      p.LivingArea,
			Zestimate: p.Estimates.Zestimate,
			RentEst:   p.Estimates.RentZestimate,
			URL:       absoluteURL(p.HdpURL),
		})
	}
	return listings, nil
}

func (c *httpClient) Chart(ctx context.Context, zpid, which string) (map[string]any, error) {
	reqURL := c.baseURL + "/graph_charts?recent_first=true&which=" +
		url.QueryEscape(which) + "&byzpid=" + url.QueryEscape(zpid)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrapf(err, "zillow: fetch %s chart", which)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, eris.Wrap(err, "zillow: unmarshal chart")
	}
	return doc, nil
}

// get waits for the rate limiter, then issues an authenticated GET with
// retries. Non-200 statuses after retries are errors.
func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "zillow: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "zillow: create request")
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("zillow: unexpected status %d: %s", statusCode, string(body))
	}
	return body, nil
}

func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a request with exponential backoff on transient failures.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "zillow: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("zillow: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func absoluteURL(path string) string {
	if path == "" || path[0] != '/' {
		return path
	}
	return "https://www.zillow.com" + path
}
