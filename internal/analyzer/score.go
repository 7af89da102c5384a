package analyzer

// ScoreDeal rates a deal 1-10 from the price-to-ARV ratio and property age.
// All adjustments apply against the base score independently, then the total
// is clamped.
func ScoreDeal(listPrice, arv float64, age int) DealScore {
	ratio := 1.0
	if arv > 0 {
		ratio = listPrice / arv
	}

	score := 5
	var reasons []string

	if ratio <= 0.55 {
		score += 2
		reasons = append(reasons, "Priced at 55% of ARV or less")
	} else if ratio <= 0.65 {
		score++
		reasons = append(reasons, "Priced at 65% of ARV or less")
	}
	if age <= 20 {
		score++
		reasons = append(reasons, "Newer construction, lower rehab risk")
	}
	if age > 50 {
		score--
		reasons = append(reasons, "Older property, higher rehab risk")
	}
	if ratio > 0.75 {
		score -= 2
		reasons = append(reasons, "Thin margin at asking price")
	}

	if score > 10 {
		score = 10
	}
	if score < 1 {
		score = 1
	}

	label, rec := gradeScore(score)

	return DealScore{
		Score:          score,
		Label:          label,
		Recommendation: rec,
		Reasons:        reasons,
		PriceToARV:     round4(ratio),
	}
}

func gradeScore(score int) (label, recommendation string) {
	switch {
	case score >= 9:
		return "HOT DEAL", "BUY IMMEDIATELY"
	case score >= 8:
		return "EXCELLENT", "BUY - Strong opportunity"
	case score >= 7:
		return "GOOD", "BUY - Solid deal"
	case score >= 6:
		return "FAIR", "CONDITIONAL - Verify carefully"
	default:
		return "POOR", "PASS - No profit"
	}
}
