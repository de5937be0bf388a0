package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a regex-matched monetary string to a decimal,
// accepting either "," or "." as the decimal separator. Spaces and extra
// dots are treated as thousands separators; the last separator wins as the
// decimal point.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = strings.ReplaceAll(s[:i], ".", "") + s[i:]
	}
	return decimal.NewFromString(s)
}

// setAmount overwrites dst with the parsed amount. A malformed number that
// slipped past a regex is treated as no match: the previous value stays.
func setAmount(dst *decimal.Decimal, s string) {
	if v, err := ParseAmount(s); err == nil {
		*dst = v
	}
}
