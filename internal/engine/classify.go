package engine

import (
	"strings"

	"github.com/evenlyhq/receiptlens/constants"
)

// signature maps a merchant-identifying token to a strategy and the
// canonical label recorded on the output.
type signature struct {
	token string // matched case-insensitively as a substring
	tag   constants.StrategyTag
	label string
}

// Signatures are probed against every line, not just the first: OCR
// frequently drops or reorders the true header line.
var signatures = []signature{
	{token: "aeon", tag: constants.StrategyAEON, label: constants.MerchantAEON},
	{token: "lotus", tag: constants.StrategyLOTUS, label: constants.MerchantLOTUS},
}

// Classify scans the normalized lines for a known merchant signature. The
// first line containing one decides the strategy; unmatched input falls
// back to the generic strategy, which still extracts totals and date/time.
func Classify(lines []string) (constants.StrategyTag, string) {
	for _, ln := range lines {
		low := strings.ToLower(ln)
		for _, sig := range signatures {
			if strings.Contains(low, sig.token) {
				return sig.tag, sig.label
			}
		}
	}
	return constants.StrategyGeneric, constants.MerchantUnknown
}
