package analyzer

import "time"

// Per-square-foot renovation rates in dollars. Fixed constants of the model.
const (
	lightRate  = 25.0
	mediumRate = 40.0
	heavyRate  = 60.0
)

var scopeDescriptions = map[Scope]string{
	ScopeLight:  "Cosmetic updates: paint, flooring, fixtures",
	ScopeMedium: "Moderate renovation: kitchen, baths, mechanicals",
	ScopeHeavy:  "Full gut renovation: structure and all systems",
}

// EstimateRehab computes the three renovation cost scenarios for a property
// and suggests a scope from its age. Age is current year minus year built;
// anomalous years (future or absurdly old) propagate unclamped.
func EstimateRehab(yearBuilt int, sqft float64) RehabEstimate {
	age := time.Now().Year() - yearBuilt

	est := RehabEstimate{
		Light:       sqft * lightRate,
		Medium:      sqft * mediumRate,
		Heavy:       sqft * heavyRate,
		PropertyAge: age,
	}

	switch {
	case age <= 20:
		est.Scope = ScopeLight
		est.Recommended = est.Light
	case age <= 50:
		est.Scope = ScopeMedium
		est.Recommended = est.Medium
	default:
		est.Scope = ScopeHeavy
		est.Recommended = est.Heavy
	}
	est.Description = scopeDescriptions[est.Scope]

	return est
}
