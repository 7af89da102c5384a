package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateRehabRates(t *testing.T) {
	est := EstimateRehab(1975, 1200)

	assert.Equal(t, 30000.0, est.Light)
	assert.Equal(t, 48000.0, est.Medium)
	assert.Equal(t, 72000.0, est.Heavy)
	assert.Less(t, est.Light, est.Medium)
	assert.Less(t, est.Medium, est.Heavy)
	assert.Equal(t, time.Now().Year()-1975, est.PropertyAge)
}

func TestEstimateRehabScopeByAge(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name      string
		yearBuilt int
		scope     Scope
		cost      float64
	}{
		{"new build light", year - 10, ScopeLight, 25000},
		{"boundary twenty light", year - 20, ScopeLight, 25000},
		{"mid age medium", year - 35, ScopeMedium, 40000},
		{"boundary fifty medium", year - 50, ScopeMedium, 40000},
		{"old heavy", year - 80, ScopeHeavy, 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := EstimateRehab(tt.yearBuilt, 1000)
			assert.Equal(t, tt.scope, est.Scope)
			assert.Equal(t, tt.cost, est.Recommended)
			assert.NotEmpty(t, est.Description)
		})
	}
}

func TestEstimateRehabFutureYearPropagates(t *testing.T) {
	est := EstimateRehab(time.Now().Year()+5, 1000)

	assert.Equal(t, -5, est.PropertyAge)
	assert.Equal(t, ScopeLight, est.Scope)
}
