package engine

import (
	"github.com/shopspring/decimal"

	"github.com/evenlyhq/receiptlens/constants"
)

// LineItem is a single purchased item recovered from the receipt text.
// Code is merchant-assigned and treated as opaque text: leading zeros matter.
type LineItem struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	PriceKnown bool            `json:"price_known"`
	Quantity   int             `json:"quantity"`
}

// PriceLabel renders the price for display, using the sentinel when the
// price never resolved.
func (it LineItem) PriceLabel() string {
	if !it.PriceKnown {
		return constants.UnknownPrice
	}
	return it.Price.StringFixed(2)
}

// Totals holds the monetary summary of the receipt. Fields the input never
// populates stay at zero.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
	Tax      decimal.Decimal `json:"tax"`
}

// ReceiptRecord is the engine output: one structured record per input text,
// returned by value and never mutated afterwards. Items keep the order in
// which they appeared in the source text.
type ReceiptRecord struct {
	Merchant string     `json:"merchant"`
	Items    []LineItem `json:"items"`
	Totals   Totals     `json:"totals"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`
}

// builder accumulates state for a single parse. Everything here is local to
// one Parse call; the engine shares nothing between invocations.
type builder struct {
	merchant string
	items    []LineItem
	totals   Totals
	date     string
	time     string
}

func newBuilder(merchant string) *builder {
	return &builder{merchant: merchant, items: make([]LineItem, 0, 8)}
}

func (b *builder) append(it LineItem) {
	b.items = append(b.items, it)
}

// assemble produces the final record. Pure aggregation: fields never
// populated by the input keep their documented defaults, so the result is
// always structurally valid.
func (b *builder) assemble() ReceiptRecord {
	date, clock := b.date, b.time
	if date == "" {
		date = constants.UnknownField
	}
	if clock == "" {
		clock = constants.UnknownField
	}
	return ReceiptRecord{
		Merchant: b.merchant,
		Items:    b.items,
		Totals:   b.totals,
		Date:     date,
		Time:     clock,
	}
}
