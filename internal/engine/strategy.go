package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/evenlyhq/receiptlens/constants"
)

// pendingKind says which field of a header-matched item is still missing.
type pendingKind int

const (
	pendingNone  pendingKind = iota // item fully resolved by its header line
	pendingName                     // name expected on the following line
	pendingPrice                    // price expected on a following line
)

// strategy is the data describing one merchant format: its item header
// pattern, how a header match becomes an item, the ordered price patterns
// that can resolve a pending item, and the end-of-input flush policy.
// Adding a merchant format is a new table entry, not new control flow.
type strategy struct {
	tag           constants.StrategyTag
	header        *regexp.Regexp
	buildHeader   func(m []string) (LineItem, pendingKind)
	pricePatterns []*regexp.Regexp // anchored; first submatch is the amount
	keepTrailing  bool             // keep a still-pending item at end of input
}

var strategies = map[constants.StrategyTag]*strategy{
	constants.StrategyAEON: {
		tag: constants.StrategyAEON,
		// Quantity, item code and price share one line; the item name
		// follows on the next, e.g. "2x 1234567890123 5.00" / "Fresh Apple".
		header: regexp.MustCompile(`^(\d+)x\s+(\d+)\s+(\d+[.,]\d{2})$`),
		buildHeader: func(m []string) (LineItem, pendingKind) {
			it := LineItem{Code: m[2], Quantity: 1}
			if q, err := strconv.Atoi(m[1]); err == nil && q > 0 {
				it.Quantity = q
			}
			if v, err := ParseAmount(m[3]); err == nil {
				it.Price, it.PriceKnown = v, true
			}
			return it, pendingName
		},
		keepTrailing: true,
	},
	constants.StrategyLOTUS: {
		tag: constants.StrategyLOTUS,
		// Code and name share one line with an optional trailing price,
		// e.g. "09555663103205 LOTUSS TAT PAK CHOY 3.20". Without the
		// price the item stays pending until a price line shows up.
		header: regexp.MustCompile(`(?i)^(\d+)\s+([A-Z\s./]+?)(?:\s+(\d+[.,]\d{2}))?$`),
		buildHeader: func(m []string) (LineItem, pendingKind) {
			it := LineItem{Code: m[1], Name: strings.TrimSpace(m[2]), Quantity: 1}
			if m[3] == "" {
				return it, pendingPrice
			}
			if v, err := ParseAmount(m[3]); err == nil {
				it.Price, it.PriceKnown = v, true
			}
			return it, pendingNone
		},
		// Anchored so metadata lines such as "TOTAL 49.62" fall through to
		// the field extractors instead of resolving a pending item.
		pricePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^REDUCED\s+PRICE\s+(\d+[.,]\d{2})$`),
			regexp.MustCompile(`^(\d+[.,]\d{2})$`),
		},
		keepTrailing: true,
	},
	// Generic: no item patterns, metadata extraction only.
	constants.StrategyGeneric: {
		tag: constants.StrategyGeneric,
	},
}

// tryHeader matches a line against the strategy's item header.
func tryHeader(st *strategy, line string) (LineItem, pendingKind, bool) {
	if st.header == nil {
		return LineItem{}, pendingNone, false
	}
	m := st.header.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, pendingNone, false
	}
	it, kind := st.buildHeader(m)
	return it, kind, true
}

// resolvePrice tries the strategy's price patterns against a line.
func (st *strategy) resolvePrice(line string) (string, bool) {
	for _, re := range st.pricePatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// flushPending finalizes a pending item with the unknown sentinels. Partial
// items are recorded explicitly, never silently dropped.
func flushPending(it LineItem) LineItem {
	if it.Name == "" {
		it.Name = constants.UnknownName
	}
	if it.Quantity <= 0 {
		it.Quantity = 1
	}
	return it
}
