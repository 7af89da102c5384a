// Package realtor provides a client for the Realtor.com API on RapidAPI,
// used to pull listing description text.
package realtor

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

// Client defines the Realtor.com operations.
type Client interface {
	// Description resolves an address to a property and returns its listing
	// description text. Empty string when the listing carries none.
	Description(ctx context.Context, address string) (string, error)
}

// Option configures the Realtor client.
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

// NewClient creates a Realtor.com client for the given RapidAPI key and host.
func NewClient(apiKey, host string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		host:    host,
		baseURL: "https://" + host,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type autocompleteEnvelope struct {
	Autocomplete []struct {
		AreaType string `json:"area_type"`
		MprID    string `json:"mpr_id"`
	} `json:"autocomplete"`
}

type detailEnvelope struct {
	Data struct {
		Home struct {
			Description struct {
				Text string `json:"text"`
			} `json:"description"`
		} `json:"home"`
	} `json:"data"`
}

func (c *httpClient) Description(ctx context.Context, address string) (string, error) {
	propertyID, err := c.propertyID(ctx, address)
	if err != nil {
		return "", err
	}
	if propertyID == "" {
		return "", eris.Errorf("realtor: no property match for %q", address)
	}

	body, err := c.get(ctx, c.baseURL+"/properties/v3/detail?property_id="+url.QueryEscape(propertyID))
	if err != nil {
		return "", eris.Wrap(err, "realtor: fetch detail")
	}

	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", eris.Wrap(err, "realtor: unmarshal detail")
	}
	return env.Data.Home.Description.Text, nil
}

// propertyID resolves a street address through autocomplete, taking the
// first address-typed suggestion.
func (c *httpClient) propertyID(ctx context.Context, address string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/locations/v2/auto-complete?input="+url.QueryEscape(address))
	if err != nil {
		return "", eris.Wrap(err, "realtor: autocomplete")
	}

	var env autocompleteEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", eris.Wrap(err, "realtor: unmarshal autocomplete")
	}

	for _, hit := range env.Autocomplete {
		if hit.AreaType == "address" && hit.MprID != "" {
			return hit.MprID, nil
		}
	}
	return "", nil
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "realtor: rate limit wait")
	}

	const maxAttempts = 3
	backoff := 1 * time.Second

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "realtor: create request")
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				return nil, eris.Wrap(readErr, "realtor: read response body")
			}
			if resp.StatusCode == http.StatusOK {
				return body, nil
			}
			lastErr = eris.Errorf("realtor: status %d: %s", resp.StatusCode, string(body))
			if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
				return nil, lastErr
			}
		}
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, lastErr
}
