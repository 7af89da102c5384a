// Package redfin provides a client for the unofficial Redfin stingray
// endpoints, used as a last-resort source of listing description text.
package redfin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// jsonPrefix guards every stingray response body and must be stripped before
// decoding.
const jsonPrefix = "{}&&"

// Client defines the Redfin operations.
type Client interface {
	// Description resolves an address to a Redfin property id and returns
	// its marketing remarks.
	Description(ctx context.Context, address string) (string, error)
}

// Option configures the Redfin client.
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
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Redfin client. No API key: the stingray endpoints are
// public but expect a browser user agent.
func NewClient(host string, opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://" + host,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type autocompletePayload struct {
	Payload struct {
		Sections []struct {
			Rows []struct {
				ID  string `json:"id"`
				URL string `json:"url"`
			} `json:"rows"`
		} `json:"sections"`
	} `json:"payload"`
}

type detailsPayload struct {
	Payload struct {
		MainHouseInfo struct {
			MarketingRemarks []struct {
				MarketingRemark string `json:"marketingRemark"`
			} `json:"marketingRemarks"`
		} `json:"mainHouseInfo"`
	} `json:"payload"`
}

func (c *httpClient) Description(ctx context.Context, address string) (string, error) {
	propertyID, err := c.propertyID(ctx, address)
	if err != nil {
		return "", err
	}
	if propertyID == "" {
		return "", eris.Errorf("redfin: no property match for %q", address)
	}

	body, err := c.get(ctx, c.baseURL+"/stingray/api/home/details/belowTheFold?propertyId="+
		url.QueryEscape(propertyID)+"&accessLevel=1")
	if err != nil {
		return "", eris.Wrap(err, "redfin: fetch details")
	}

	var env detailsPayload
	if err := json.Unmarshal(stripPrefix(body), &env); err != nil {
		return "", eris.Wrap(err, "redfin: unmarshal details")
	}

	remarks := env.Payload.MainHouseInfo.MarketingRemarks
	if len(remarks) == 0 {
		return "", nil
	}
	return remarks[0].MarketingRemark, nil
}

// propertyID walks the autocomplete sections for the first property row.
// Row ids look like "1_12345"; the part after the underscore is the id.
func (c *httpClient) propertyID(ctx context.Context, address string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/stingray/do/location-autocomplete?location="+
		url.QueryEscape(address)+"&v=2")
	if err != nil {
		return "", eris.Wrap(err, "redfin: autocomplete")
	}

	var env autocompletePayload
	if err := json.Unmarshal(stripPrefix(body), &env); err != nil {
		return "", eris.Wrap(err, "redfin: unmarshal autocomplete")
	}

	for _, section := range env.Payload.Sections {
		for _, row := range section.Rows {
			if _, id, found := strings.Cut(row.ID, "_"); found && id != "" {
				return id, nil
			}
		}
	}
	return "", nil
}

func stripPrefix(body []byte) []byte {
	if strings.HasPrefix(string(body), jsonPrefix) {
		return body[len(jsonPrefix):]
	}
	return body
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "redfin: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "redfin: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; reonmarket/1.0)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "redfin: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "redfin: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("redfin: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
