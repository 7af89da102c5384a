package analyzer

import "math"

const (
	arvDiscount = 0.95
	maoRule     = 0.70
)

// ComputeOffers derives the conservative ARV and the 70%-rule offer for each
// rehab scenario, picking the cheapest tier whose offer still clears the list
// price. A total function: no error paths, no division unless guarded.
func ComputeOffers(estimate, listPrice float64, rehab RehabEstimate) OfferAnalysis {
	arv := math.Round(estimate * arvDiscount)

	scenario := func(scope Scope, cost float64) ScenarioOffer {
		mao := math.Round(arv*maoRule - cost)
		return ScenarioOffer{
			Scope:  scope,
			Cost:   cost,
			MAO:    mao,
			Profit: math.Round(mao - listPrice),
		}
	}

	out := OfferAnalysis{
		ARV:    arv,
		Light:  scenario(ScopeLight, rehab.Light),
		Medium: scenario(ScopeMedium, rehab.Medium),
		Heavy:  scenario(ScopeHeavy, rehab.Heavy),
	}

	// Cheapest viable tier wins; all under water means no deal at asking.
	out.BestScenario = "Not a Deal"
	out.BestProfit = out.Heavy.Profit
	for _, s := range []ScenarioOffer{out.Light, out.Medium, out.Heavy} {
		if s.MAO >= listPrice {
			out.BestScenario = "Works with " + string(s.Scope) + " Rehab"
			out.BestProfit = s.Profit
			break
		}
	}

	out.MAO65 = math.Round(arv*0.65 - rehab.Recommended)
	out.MAO70 = math.Round(arv*0.70 - rehab.Recommended)
	out.MAO75 = math.Round(arv*0.75 - rehab.Recommended)
	out.RecommendedOffer = out.MAO70

	out.ProfitPotential = math.Round(arv - listPrice - rehab.Recommended)
	if invested := listPrice + rehab.Recommended; invested > 0 {
		out.ROIPct = round2(out.ProfitPotential / invested * 100)
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
