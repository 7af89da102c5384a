package analyzer

import "strings"

// fixerVocabulary lists the signal phrases scanned for in listing text,
// grouped by the kind of signal they carry. Matching is case-insensitive
// substring search; overlapping entries ("fixer" inside "fixer-upper") are
// expected to match together.
var fixerVocabulary = []string{
	// direct fixer
	"fixer-upper", "fixer upper", "fixer", "fix and flip", "fix & flip",
	// handyman
	"handyman special", "handyman's special",
	// needs work
	"needs work", "needs tlc", "tlc", "needs repair", "needs updating",
	"needs renovation", "needs rehab", "sweat equity",
	// as-is sale
	"sold as-is", "as-is", "as is",
	// investor opportunity
	"investor special", "investors welcome", "investment opportunity",
	"great investment", "rental potential",
	// cash sale and price urgency
	"cash only", "cash buyer", "all cash", "priced to sell",
	"priced below market",
	// renovation state
	"renovation", "gut rehab", "outdated", "original condition",
	"good bones", "great bones", "diamond in the rough", "full of potential",
	// motivated seller
	"motivated seller", "must sell", "bring all offers", "quick close",
	// distressed sale
	"estate sale", "probate", "foreclosure", "short sale", "bank owned",
	"distressed",
}

// DetectKeywords scans listing text for fixer and distress signal phrases.
// Empty text yields a non-fixer result.
func DetectKeywords(text string) KeywordMatch {
	if text == "" {
		return KeywordMatch{Keywords: []string{}}
	}

	lower := strings.ToLower(text)
	matched := []string{}
	for _, kw := range fixerVocabulary {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}

	return KeywordMatch{
		IsFixer:  len(matched) > 0,
		Keywords: matched,
		Count:    len(matched),
	}
}
