// Package describe resolves listing description text by trying a chain of
// sources in order until one returns something usable.
package describe

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/pkg/realtor"
	"github.com/kwisener01/re-onmarket/pkg/redfin"
	"github.com/kwisener01/re-onmarket/pkg/scraper"
)

// Property carries what a source needs to locate the listing.
type Property struct {
	Address string
	URL     string
}

// Source is one provider of listing text.
type Source interface {
	Name() string
	Description(ctx context.Context, prop Property) (string, error)
}

// Chain tries each source in order; the first non-empty description wins.
// Source failures are logged and skipped, never fatal: a property with no
// obtainable text simply gets an empty description.
type Chain struct {
	sources []Source
}

// NewChain builds a chain over the given sources, tried in argument order.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Description returns the first non-empty description the chain produces.
func (c *Chain) Description(ctx context.Context, prop Property) string {
	for _, src := range c.sources {
		text, err := src.Description(ctx, prop)
		if err != nil {
			zap.L().Debug("describe: source failed",
				zap.String("source", src.Name()),
				zap.String("address", prop.Address),
				zap.Error(err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			zap.L().Debug("describe: source hit",
				zap.String("source", src.Name()),
				zap.Int("length", len(text)))
			return text
		}
	}
	return ""
}

// RealtorSource pulls text from the Realtor.com detail API.
type RealtorSource struct {
	Client realtor.Client
}

func (s RealtorSource) Name() string { return "realtor" }

func (s RealtorSource) Description(ctx context.Context, prop Property) (string, error) {
	return s.Client.Description(ctx, prop.Address)
}

// ScraperSource extracts text from the listing page itself. Skipped when the
// property has no URL.
type ScraperSource struct {
	Client scraper.Client
}

func (s ScraperSource) Name() string { return "scraper" }

func (s ScraperSource) Description(ctx context.Context, prop Property) (string, error) {
	if prop.URL == "" {
		return "", nil
	}
	return s.Client.Extract(ctx, prop.URL)
}

// RedfinSource is the last resort, via the unofficial Redfin endpoints.
type RedfinSource struct {
	Client redfin.Client
}

func (s RedfinSource) Name() string { return "redfin" }

func (s RedfinSource) Description(ctx context.Context, prop Property) (string, error) {
	return s.Client.Description(ctx, prop.Address)
}
