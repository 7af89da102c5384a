// Package trend classifies a property's valuation history: direction,
// volatility, peak distance, and an investment signal.
package trend

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrInsufficientData is surfaced when fewer than two usable history points
// exist. The message is part of the result contract.
var ErrInsufficientData = eris.New("Insufficient data for trend analysis")

// Point is one valuation snapshot. Field names mirror the upstream chart
// payload.
type Point struct {
	Timestamp int64   `json:"x"` // unix milliseconds
	Value     float64 `json:"y"`
}

// Analysis is the computed trend summary for one property.
type Analysis struct {
	CurrentValue      float64 `json:"current_value"`
	OldestValue       float64 `json:"oldest_value"`
	OneYearAgoValue   float64 `json:"one_year_ago_value"`
	SixMonthsAgoValue float64 `json:"six_months_ago_value"`
	TotalChange       float64 `json:"total_change"`
	TotalChangePct    float64 `json:"total_change_pct"`
	OneYearChangePct  float64 `json:"one_year_change_pct"`
	SixMonthChangePct float64 `json:"six_month_change_pct"`
	VolatilityPct     float64 `json:"volatility_pct"`
	Peak              float64 `json:"peak"`
	Trough            float64 `json:"trough"`
	FromPeakPct       float64 `json:"from_peak_pct"`
	Trend             string  `json:"trend"`
	Signal            string  `json:"signal"`
	DataPoints        int     `json:"data_points"`
	RangeDays         int     `json:"range_days"`
}

const dayMillis = 24 * 60 * 60 * 1000

// Analyze summarizes an unordered valuation series. Requires at least two
// points.
func Analyze(points []Point) (*Analysis, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	current := sorted[0]
	oldest := sorted[len(sorted)-1]

	// First point at or past each lookback window. Zero means the series
	// does not reach that far back.
	var yearAgo, halfYearAgo float64
	for _, p := range sorted {
		ageDays := float64(current.Timestamp-p.Timestamp) / dayMillis
		if halfYearAgo == 0 && ageDays >= 180 {
			halfYearAgo = p.Value
		}
		if yearAgo == 0 && ageDays >= 365 {
			yearAgo = p.Value
			break
		}
	}

	out := &Analysis{
		CurrentValue:      current.Value,
		OldestValue:       oldest.Value,
		OneYearAgoValue:   yearAgo,
		SixMonthsAgoValue: halfYearAgo,
		TotalChange:       math.Round(current.Value - oldest.Value),
		TotalChangePct:    pctChange(current.Value, oldest.Value),
		OneYearChangePct:  pctChange(current.Value, yearAgo),
		SixMonthChangePct: pctChange(current.Value, halfYearAgo),
		DataPoints:        len(sorted),
		RangeDays:         int((current.Timestamp - oldest.Timestamp) / dayMillis),
	}

	positive := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if p.Value > 0 {
			positive = append(positive, p.Value)
		}
	}
	if len(positive) > 0 {
		mean, stddev := meanStddev(positive)
		if mean > 0 {
			out.VolatilityPct = round2(stddev / mean * 100)
		}
		out.Peak = positive[0]
		out.Trough = positive[0]
		for _, v := range positive {
			out.Peak = math.Max(out.Peak, v)
			out.Trough = math.Min(out.Trough, v)
		}
		if out.Peak > 0 {
			out.FromPeakPct = round2((current.Value - out.Peak) / out.Peak * 100)
		}
	}

	out.Trend, out.Signal = classify(out.OneYearChangePct)

	zap.L().Debug("trend: analyzed series",
		zap.Int("points", out.DataPoints),
		zap.Float64("one_year_change_pct", out.OneYearChangePct),
		zap.String("trend", out.Trend))

	return out, nil
}

// classify buckets the one-year change into a trend label and signal.
func classify(oneYearPct float64) (trend, signal string) {
	switch {
	case oneYearPct < -5:
		return "DECLINING", "Potential distressed deal, values falling"
	case oneYearPct < 0:
		return "Slightly Down", "Watch closely, soft market"
	case oneYearPct < 5:
		return "Stable", "Normal market conditions"
	case oneYearPct < 10:
		return "Rising", "Appreciating market"
	default:
		return "STRONG GROWTH", "Caution, may be overvalued"
	}
}

func pctChange(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return round2((current - baseline) / baseline * 100)
}

func meanStddev(values []float64) (mean, stddev float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
