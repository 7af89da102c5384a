// Package dealfinder orchestrates a full deal search: one listing search,
// cheap screening of the results, deep analysis of the best candidates, and
// trend plus rental follow-ups for the ones that score well.
package dealfinder

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/analyzer"
	"github.com/kwisener01/re-onmarket/internal/describe"
	"github.com/kwisener01/re-onmarket/internal/rental"
	"github.com/kwisener01/re-onmarket/internal/trend"
	"github.com/kwisener01/re-onmarket/pkg/zillow"
)

// Describer resolves listing text for keyword scanning. Optional.
type Describer interface {
	Description(ctx context.Context, prop describe.Property) string
}

// Criteria are the user-facing search parameters.
type Criteria struct {
	Location string   `json:"location"`
	MaxPrice float64  `json:"max_price"`
	MinBeds  int      `json:"min_beds"`
	MinBaths int      `json:"min_baths"`
	Keywords []string `json:"keywords,omitempty"`
}

// Config bounds the workflow. Zero values take the defaults.
type Config struct {
	ScreenCount  int // snapshots kept after screening
	AnalyzeCount int // candidates given a deep analysis
	MinDealScore int // threshold for trend and rental follow-ups
}

const (
	defaultScreenCount  = 20
	defaultAnalyzeCount = 5
	defaultMinDealScore = 6
)

// Candidate is a screened search result.
type Candidate struct {
	Snapshot     analyzer.Snapshot `json:"snapshot"`
	PricePerSqft float64           `json:"price_per_sqft"`
}

// Deal is one fully analyzed property. Trend and Rental are present only for
// deals clearing the score threshold.
type Deal struct {
	Snapshot analyzer.Snapshot `json:"snapshot"`
	Report   analyzer.Report   `json:"report"`
	Trend    *trend.Analysis   `json:"trend,omitempty"`
	Rental   *rental.Result    `json:"rental,omitempty"`
}

// Results is the full outcome of one workflow run.
type Results struct {
	Criteria   Criteria    `json:"criteria"`
	Screened   []Candidate `json:"screened"`
	Deals      []Deal      `json:"deals"`
	APICalls   int         `json:"api_calls"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}

// Finder runs the workflow. All upstream calls are sequential; the clients
// rate-limit themselves.
type Finder struct {
	zillow    zillow.Client
	describer Describer
	cfg       Config
}

// New creates a Finder. describer may be nil, in which case keyword
// detection sees empty text.
func New(z zillow.Client, describer Describer, cfg Config) *Finder {
	if cfg.ScreenCount <= 0 {
		cfg.ScreenCount = defaultScreenCount
	}
	if cfg.AnalyzeCount <= 0 {
		cfg.AnalyzeCount = defaultAnalyzeCount
	}
	if cfg.MinDealScore <= 0 {
		cfg.MinDealScore = defaultMinDealScore
	}
	return &Finder{zillow: z, describer: describer, cfg: cfg}
}

// FindDeals runs search, screen, analyze, and deep-dive for the criteria.
func (f *Finder) FindDeals(ctx context.Context, criteria Criteria) (*Results, error) {
	results := &Results{Criteria: criteria, StartedAt: time.Now()}

	listings, err := f.zillow.Search(ctx, zillow.SearchCriteria{
		Location: criteria.Location,
		MaxPrice: criteria.MaxPrice,
		MinBeds:  criteria.MinBeds,
		MinBaths: criteria.MinBaths,
		Keywords: criteria.Keywords,
	})
	results.APICalls++
	if err != nil {
		return nil, eris.Wrap(err, "dealfinder: search")
	}

	zap.L().Info("dealfinder: search complete",
		zap.String("location", criteria.Location),
		zap.Int("listings", len(listings)))

	results.Screened = screen(listings, f.cfg.ScreenCount)

	for i, cand := range results.Screened {
		if i >= f.cfg.AnalyzeCount {
			break
		}
		results.Deals = append(results.Deals, f.analyze(ctx, cand, results))
	}

	sort.SliceStable(results.Deals, func(i, j int) bool {
		return dealScore(results.Deals[i]) > dealScore(results.Deals[j])
	})

	for i := range results.Deals {
		deal := &results.Deals[i]
		if dealScore(*deal) < f.cfg.MinDealScore {
			continue
		}
		f.deepDive(ctx, deal, results)
	}

	results.FinishedAt = time.Now()
	zap.L().Info("dealfinder: run complete",
		zap.Int("screened", len(results.Screened)),
		zap.Int("analyzed", len(results.Deals)),
		zap.Int("api_calls", results.APICalls))

	return results, nil
}

// screen keeps listings with usable price and size, cheapest per square foot
// first.
func screen(listings []zillow.Listing, keep int) []Candidate {
	candidates := make([]Candidate, 0, len(listings))
	for _, l := range listings {
		if l.Price <= 0 || l.Sqft <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			Snapshot:     toSnapshot(l),
			PricePerSqft: l.Price / l.Sqft,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PricePerSqft < candidates[j].PricePerSqft
	})

	if len(candidates) > keep {
		candidates = candidates[:keep]
	}
	return candidates
}

func (f *Finder) analyze(ctx context.Context, cand Candidate, results *Results) Deal {
	snap := cand.Snapshot

	raw, err := f.zillow.Property(ctx, snap.FullAddress())
	results.APICalls++
	if err != nil {
		// Analysis falls back to the snapshot alone.
		zap.L().Warn("dealfinder: property fetch failed",
			zap.String("address", snap.FullAddress()),
			zap.Error(err))
		raw = nil
	}

	var description string
	if f.describer != nil {
		description = f.describer.Description(ctx, describe.Property{
			Address: snap.FullAddress(),
			URL:     snap.URL,
		})
		results.APICalls++
	}

	return Deal{
		Snapshot: snap,
		Report: analyzer.Analyze(analyzer.Input{
			Raw:         raw,
			Snapshot:    &snap,
			Description: description,
		}),
	}
}

// deepDive attaches trend and rental analyses to a qualifying deal. Both are
// best-effort.
func (f *Finder) deepDive(ctx context.Context, deal *Deal, results *Results) {
	prop := deal.Report.Property
	if prop == nil {
		return
	}

	if prop.ZPID != "" {
		doc, err := f.zillow.Chart(ctx, prop.ZPID, "zestimate_history")
		results.APICalls++
		if err != nil {
			zap.L().Debug("dealfinder: chart fetch failed",
				zap.String("zpid", prop.ZPID), zap.Error(err))
		} else if points, err := trend.FromChart(doc); err == nil {
			if analysis, err := trend.Analyze(points); err == nil {
				deal.Trend = analysis
			}
		}
	}

	if prop.RentEst > 0 && prop.ListPrice > 0 {
		r := rental.Analyze(prop.ListPrice, prop.RentEst, rental.DefaultAssumptions())
		deal.Rental = &r
	}
}

func dealScore(d Deal) int {
	if d.Report.Deal == nil {
		return 0
	}
	return d.Report.Deal.Score
}

func toSnapshot(l zillow.Listing) analyzer.Snapshot {
	return analyzer.Snapshot{
		ZPID:      l.ZPID,
		Address:   l.Address,
		City:      l.City,
		State:     l.State,
		Zip:       l.Zip,
		Beds:      l.Beds,
		Baths:     l.Baths,
		Sqft:      l.Sqft,
		Price:     l.Price,
		Zestimate: l.Zestimate,
		RentEst:   l.RentEst,
		URL:       l.URL,
	}
}
