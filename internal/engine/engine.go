package engine

import (
	"log/slog"

	"github.com/evenlyhq/receiptlens/constants"
)

// parseState is the item-assembly state; transitions happen only on header,
// field, or end-of-input events.
type parseState int

const (
	stateIdle parseState = iota
	statePendingName
	statePendingPrice
)

// Parser interprets OCR transcripts of retail receipts. It holds no state
// between invocations: Parse is a pure function of its input and may be
// called concurrently for different inputs.
type Parser struct {
	logger     *slog.Logger
	strategies map[constants.StrategyTag]*strategy
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, strategies: strategies}
}

// Parse interprets one receipt transcript. It always returns a structurally
// valid record: unrecognized or malformed input degrades to defaults and
// sentinels, never an error.
func (p *Parser) Parse(text string) ReceiptRecord {
	lines := NormalizeLines(text)
	tag, label := Classify(lines)
	b := newBuilder(label)
	p.runStrategy(p.strategies[tag], lines, b)
	rec := b.assemble()
	p.logger.Debug("receipt parsed",
		"strategy", string(tag),
		"merchant", rec.Merchant,
		"items", len(rec.Items),
		"total", rec.Totals.Total.StringFixed(2),
	)
	return rec
}

func (p *Parser) runStrategy(st *strategy, lines []string, b *builder) {
	state := stateIdle
	var pending LineItem

	for _, line := range lines {
		switch state {
		case statePendingName:
			if it, kind, ok := tryHeader(st, line); ok {
				// A new header flushes the previous pending item.
				b.append(flushPending(pending))
				pending, state = acceptHeader(b, it, kind)
				probeFields(b, line)
				continue
			}
			if matchesFields(line) {
				b.append(flushPending(pending))
				pending, state = LineItem{}, stateIdle
				probeFields(b, line)
				continue
			}
			pending.Name = line
			b.append(pending)
			pending, state = LineItem{}, stateIdle
			continue

		case statePendingPrice:
			if raw, ok := st.resolvePrice(line); ok {
				if v, err := ParseAmount(raw); err == nil {
					pending.Price, pending.PriceKnown = v, true
					b.append(pending)
					pending, state = LineItem{}, stateIdle
					continue
				}
			}
			if it, kind, ok := tryHeader(st, line); ok {
				b.append(flushPending(pending))
				pending, state = acceptHeader(b, it, kind)
				probeFields(b, line)
				continue
			}
			// Totals and date/time may be interleaved between item lines.
			probeFields(b, line)
			continue
		}

		if it, kind, ok := tryHeader(st, line); ok {
			pending, state = acceptHeader(b, it, kind)
			probeFields(b, line)
			continue
		}
		probeFields(b, line)
	}

	if state != stateIdle && st.keepTrailing {
		b.append(flushPending(pending))
	}
}

// acceptHeader appends a fully resolved item immediately; a partial item
// becomes the new pending item with the matching machine state.
func acceptHeader(b *builder, it LineItem, kind pendingKind) (LineItem, parseState) {
	switch kind {
	case pendingName:
		return it, statePendingName
	case pendingPrice:
		return it, statePendingPrice
	default:
		b.append(it)
		return LineItem{}, stateIdle
	}
}
