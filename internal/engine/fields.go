package engine

import "regexp"

// fieldPattern is one named phrasing a cross-cutting extractor recognizes.
// Patterns are tried top-to-bottom and the first match on a line wins, so
// precedence is explicit instead of emergent from regex alternation.
type fieldPattern struct {
	name  string
	re    *regexp.Regexp
	apply func(b *builder, m []string)
}

// totalPatterns lists the recognized total-line phrasings in precedence
// order. "subtotal" must come before the bare "total" phrasing or
// "Sub-total 10.00" would be misread as a grand total.
var totalPatterns = []fieldPattern{
	{
		name: "total_after_adj",
		re:   regexp.MustCompile(`(?i)Total\s+After\s+Adj\s+INCL\s+SVC\s+TAX\s+(\d+[.,]\d{2})`),
		apply: func(b *builder, m []string) {
			setAmount(&b.totals.Total, m[1])
		},
	},
	{
		name: "total_sales",
		re:   regexp.MustCompile(`(?i)Total\s+Sales\s+(?:\w+\s+)*(\d{1,3}(?:[\s.]\d{3})*[\s.,]?\d{2})`),
		apply: func(b *builder, m []string) {
			setAmount(&b.totals.Total, m[1])
		},
	},
	{
		name: "subtotal",
		re:   regexp.MustCompile(`(?i)Sub-?total\s+(\d+[.,]\d{2})`),
		apply: func(b *builder, m []string) {
			setAmount(&b.totals.Subtotal, m[1])
		},
	},
	{
		name: "total",
		re:   regexp.MustCompile(`(?i)\bTOTAL\s+(\d+[.,]\d{2})`),
		apply: func(b *builder, m []string) {
			setAmount(&b.totals.Total, m[1])
		},
	},
}

// dateTimePattern matches DD/MM/YYYY HH:MM, bare or behind a DATE/TIME label.
var dateTimePattern = fieldPattern{
	name: "date_time",
	re:   regexp.MustCompile(`(?i)(?:DATE/TIME:?\s*)?(\d{2}/\d{2}/\d{4})\s+(\d{2}:\d{2})`),
	apply: func(b *builder, m []string) {
		b.date, b.time = m[1], m[2]
	},
}

// probeFields runs the stateless extractors against one line. Totals are
// last-match-wins across the document (receipts print a subtotal before the
// adjusted total); date/time overwrites on every match for consistency.
func probeFields(b *builder, line string) {
	for _, p := range totalPatterns {
		if m := p.re.FindStringSubmatch(line); m != nil {
			p.apply(b, m)
			break
		}
	}
	if m := dateTimePattern.re.FindStringSubmatch(line); m != nil {
		dateTimePattern.apply(b, m)
	}
}

// matchesFields reports whether any extractor recognizes the line, without
// applying it. Used to keep metadata lines from being swallowed as item
// names.
func matchesFields(line string) bool {
	for _, p := range totalPatterns {
		if p.re.MatchString(line) {
			return true
		}
	}
	return dateTimePattern.re.MatchString(line)
}
