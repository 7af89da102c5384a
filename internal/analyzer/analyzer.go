package analyzer

import (
	"time"

	"go.uber.org/zap"
)

// errSourceUnavailable is the fixed message surfaced when no upstream record
// could be fetched at all.
const errSourceUnavailable = "Unable to fetch property data"

// Input is everything Analyze needs for one property. Raw is the upstream
// detail record (nil when the fetch failed), Snapshot the lighter search
// result used for fallback, Description any listing text for keyword scans.
type Input struct {
	Raw         map[string]any
	Snapshot    *Snapshot
	Description string
}

// Analyze runs the full pipeline for one property: reconcile, rehab
// scenarios, offer math, deal score, keyword scan. Failures come back as an
// unsuccessful Report rather than an error so callers can batch freely.
func Analyze(in Input) Report {
	now := time.Now()

	if len(in.Raw) == 0 && in.Snapshot == nil {
		return Report{Success: false, Error: errSourceUnavailable, AnalyzedAt: now}
	}

	raw := in.Raw
	if len(raw) == 0 {
		// Snapshot-only analysis: reconcile against an empty record so the
		// snapshot fallback supplies every field.
		raw = map[string]any{"zpid": in.Snapshot.ZPID}
	}

	prop, err := Reconcile(raw, in.Snapshot)
	if err != nil {
		zap.L().Warn("analyzer: parse failure", zap.Error(err))
		return Report{
			Success:    false,
			Error:      err.Error(),
			RawData:    in.Raw,
			AnalyzedAt: now,
		}
	}

	rehab := EstimateRehab(prop.YearBuilt, prop.Sqft)
	offers := ComputeOffers(prop.Estimate, prop.ListPrice, rehab)
	deal := ScoreDeal(prop.ListPrice, offers.ARV, rehab.PropertyAge)
	keywords := DetectKeywords(in.Description)

	valuation := Valuation{
		Zestimate: prop.Estimate,
		ARV:       offers.ARV,
		Source:    "zestimate",
	}

	zap.L().Info("analyzer: property analyzed",
		zap.String("zpid", prop.ZPID),
		zap.Float64("list_price", prop.ListPrice),
		zap.Float64("arv", offers.ARV),
		zap.Int("deal_score", deal.Score),
		zap.String("best_scenario", offers.BestScenario))

	return Report{
		Success:    true,
		Property:   prop,
		Valuation:  &valuation,
		Rehab:      &rehab,
		Offers:     &offers,
		Deal:       &deal,
		Keywords:   &keywords,
		AnalyzedAt: now,
	}
}
