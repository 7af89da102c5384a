// Package analyzer implements the valuation and scoring engine for
// residential investment listings: field reconciliation across upstream API
// shapes, rehab cost scenarios, maximum-allowable-offer math, deal scoring,
// and fixer-keyword detection.
package analyzer

import "time"

// PropertyAttributes holds the canonical attributes resolved from a raw
// listing record. Every field is guaranteed non-null after reconciliation:
// missing values fall back to the search snapshot, then to fixed defaults.
type PropertyAttributes struct {
	ZPID      string  `json:"zpid,omitempty"`
	Beds      float64 `json:"beds"`
	Baths     float64 `json:"baths"`
	Sqft      float64 `json:"sqft"`
	YearBuilt int     `json:"year_built"`
	ListPrice float64 `json:"list_price"`
	Estimate  float64 `json:"zestimate"`
	RentEst   float64 `json:"rent_zestimate,omitempty"`
}

// Snapshot is the lighter-weight record obtained from a search result,
// used as a fallback when the detail API omits or defaults a field.
type Snapshot struct {
	ZPID      string  `json:"zpid"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zipcode"`
	Beds      float64 `json:"beds"`
	Baths     float64 `json:"baths"`
	Sqft      float64 `json:"sqft"`
	Price     float64 `json:"price"`
	Zestimate float64 `json:"zestimate,omitempty"`
	RentEst   float64 `json:"rent_zestimate,omitempty"`
	URL       string  `json:"url,omitempty"`
}

// FullAddress returns "street, city, ST zip".
func (s Snapshot) FullAddress() string {
	return s.Address + ", " + s.City + ", " + s.State + " " + s.Zip
}

// Scope identifies a rehab scenario tier.
type Scope string

// Rehab scope tiers, cheapest first.
const (
	ScopeLight  Scope = "Light"
	ScopeMedium Scope = "Medium"
	ScopeHeavy  Scope = "Heavy"
)

// RehabEstimate holds per-scenario renovation costs and the scope suggested
// by property age.
type RehabEstimate struct {
	Light       float64 `json:"light"`
	Medium      float64 `json:"medium"`
	Heavy       float64 `json:"heavy"`
	Recommended float64 `json:"recommended"`
	Scope       Scope   `json:"scope"`
	Description string  `json:"description"`
	PropertyAge int     `json:"property_age"`
}

// ScenarioOffer is the 70%-rule outcome for one rehab scenario.
type ScenarioOffer struct {
	Scope  Scope   `json:"scope"`
	Cost   float64 `json:"cost"`
	MAO    float64 `json:"mao"`
	Profit float64 `json:"profit"`
}

// OfferAnalysis holds ARV and the per-scenario offers, plus the best viable
// scenario relative to list price.
type OfferAnalysis struct {
	ARV          float64       `json:"arv"`
	Light        ScenarioOffer `json:"light"`
	Medium       ScenarioOffer `json:"medium"`
	Heavy        ScenarioOffer `json:"heavy"`
	BestScenario string        `json:"best_scenario"`
	BestProfit   float64       `json:"best_profit"`

	// Offer variants at 65/70/75% of ARV for the recommended scope, and the
	// ROI of buying at list and selling at 70% of ARV.
	MAO65            float64 `json:"mao_65_percent"`
	MAO70            float64 `json:"mao_70_percent"`
	MAO75            float64 `json:"mao_75_percent"`
	RecommendedOffer float64 `json:"recommended_max_offer"`
	ProfitPotential  float64 `json:"profit_potential"`
	ROIPct           float64 `json:"roi_percentage"`
}

// DealScore is the 1-10 quality score with label, recommendation, and the
// reasons that fired.
type DealScore struct {
	Score          int      `json:"score"`
	Label          string   `json:"label"`
	Recommendation string   `json:"recommendation"`
	Reasons        []string `json:"reasons"`
	PriceToARV     float64  `json:"price_to_arv_ratio"`
}

// KeywordMatch reports fixer/distress signal phrases found in listing text.
type KeywordMatch struct {
	IsFixer  bool     `json:"is_fixer"`
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// Report is the full structured analysis for one property. Success is false
// when the upstream record was unavailable or could not be parsed; in the
// parse-failure case RawData echoes the offending payload for diagnosis.
type Report struct {
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	RawData    map[string]any `json:"raw_data,omitempty"`
	Property   *PropertyAttributes `json:"property,omitempty"`
	Valuation  *Valuation          `json:"valuation,omitempty"`
	Rehab      *RehabEstimate      `json:"rehab,omitempty"`
	Offers     *OfferAnalysis      `json:"investor_analysis,omitempty"`
	Deal       *DealScore          `json:"deal_quality,omitempty"`
	Keywords   *KeywordMatch       `json:"keywords,omitempty"`
	AnalyzedAt time.Time           `json:"analysis_date"`
}

// Valuation holds the estimate and the conservative ARV derived from it.
type Valuation struct {
	Zestimate float64 `json:"zestimate"`
	ARV       float64 `json:"arv_conservative"`
	Source    string  `json:"arv_source"`
}
