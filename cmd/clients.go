package main

import (
	"github.com/kwisener01/re-onmarket/internal/describe"
	"github.com/kwisener01/re-onmarket/pkg/realtor"
	"github.com/kwisener01/re-onmarket/pkg/redfin"
	"github.com/kwisener01/re-onmarket/pkg/scraper"
	"github.com/kwisener01/re-onmarket/pkg/zillow"
)

func zillowClient() zillow.Client {
	return zillow.NewClient(cfg.Zillow.Key, cfg.Zillow.Host)
}

// describeChain wires every configured description source, cheapest first.
// Sources without credentials are left out.
func describeChain() *describe.Chain {
	var sources []describe.Source
	if cfg.Realtor.Key != "" {
		sources = append(sources, describe.RealtorSource{
			Client: realtor.NewClient(cfg.Realtor.Key, cfg.Realtor.Host),
		})
	}
	if cfg.Scraper.Key != "" {
		sources = append(sources, describe.ScraperSource{
			Client: scraper.NewClient(cfg.Scraper.Key, cfg.Scraper.Host),
		})
	}
	sources = append(sources, describe.RedfinSource{
		Client: redfin.NewClient(cfg.Redfin.Host),
	})
	return describe.NewChain(sources...)
}
