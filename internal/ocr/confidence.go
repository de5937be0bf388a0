package ocr

import "regexp"

var (
	reDateish   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	reAmountish = regexp.MustCompile(`\d+[.,]\d{2}`)
	reTotalish  = regexp.MustCompile(`(?i)\btotal\b`)
)

// naive heuristic confidence based on decoded text characteristics
func heuristicConfidence(txt string) float32 {
	// boost if we see common receipt artifacts (date-ish, amount-ish,
	// total-ish) plus enough content to be a real transcript
	score := float32(0.2) // base
	if reDateish.MatchString(txt) {
		score += 0.2
	}
	if reAmountish.MatchString(txt) {
		score += 0.2
	}
	if reTotalish.MatchString(txt) {
		score += 0.2
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
