package constants

// StrategyTag selects the parsing strategy for a classified merchant.
type StrategyTag string

// Stable values (these exact strings appear in logs and archived records).
const (
	StrategyAEON    StrategyTag = "AEON"
	StrategyLOTUS   StrategyTag = "LOTUS"
	StrategyGeneric StrategyTag = "GENERIC" // metadata-only fallback
)

// Canonical merchant labels.
const (
	MerchantAEON    = "AEON"
	MerchantLOTUS   = "LOTUS"
	MerchantUnknown = "Unknown Merchant"
)

// Sentinels for fields the engine could not resolve. Distinct from zero or
// empty values: a sentinel means "looked for it, never found it".
const (
	UnknownField = "NULL"    // date and time
	UnknownPrice = "UNKNOWN" // item price
	UnknownName  = "UNKNOWN" // item name
)
