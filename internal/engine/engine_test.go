package engine

import (
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evenlyhq/receiptlens/constants"
)

func TestEngine(t *testing.T) {
	// Disable logging during tests
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Suite")
}

var _ = Describe("Parser", func() {
	var (
		parser *Parser
		input  string
		rec    ReceiptRecord
	)

	BeforeEach(func() {
		parser = NewParser(nil)
	})

	JustBeforeEach(func() {
		rec = parser.Parse(input)
	})

	When("parsing an AEON receipt", func() {
		BeforeEach(func() {
			input = "AEON BiG\n" +
				"2x 1234567890123 5.00\n" +
				"Fresh Apple\n" +
				"Sub-total 10.00\n" +
				"Total After Adj INCL SVC TAX 10.60\n" +
				"01/02/2024 14:30\n"
		})

		It("should classify the merchant", func() {
			Expect(rec.Merchant).To(Equal(constants.MerchantAEON))
		})

		It("should assemble the item from the header and the following name line", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].Code).To(Equal("1234567890123"))
			Expect(rec.Items[0].Name).To(Equal("Fresh Apple"))
			Expect(rec.Items[0].Quantity).To(Equal(2))
			Expect(rec.Items[0].PriceKnown).To(BeTrue())
			Expect(rec.Items[0].Price.StringFixed(2)).To(Equal("5.00"))
		})

		It("should keep the subtotal and adjusted total apart", func() {
			Expect(rec.Totals.Subtotal.StringFixed(2)).To(Equal("10.00"))
			Expect(rec.Totals.Total.StringFixed(2)).To(Equal("10.60"))
		})

		It("should extract date and time", func() {
			Expect(rec.Date).To(Equal("01/02/2024"))
			Expect(rec.Time).To(Equal("14:30"))
		})
	})

	When("an AEON header is followed by another header instead of a name", func() {
		BeforeEach(func() {
			input = "AEON\n" +
				"1x 111 2.00\n" +
				"2x 222 3.00\n" +
				"Banana\n"
		})

		It("should flush the first item with the unknown-name sentinel", func() {
			Expect(rec.Items).To(HaveLen(2))
			Expect(rec.Items[0].Code).To(Equal("111"))
			Expect(rec.Items[0].Name).To(Equal(constants.UnknownName))
			Expect(rec.Items[0].Quantity).To(Equal(1))
		})

		It("should complete the second item normally", func() {
			Expect(rec.Items[1].Code).To(Equal("222"))
			Expect(rec.Items[1].Name).To(Equal("Banana"))
			Expect(rec.Items[1].Quantity).To(Equal(2))
		})
	})

	When("the input ends with an AEON item still waiting for its name", func() {
		BeforeEach(func() {
			input = "AEON\n2x 999 1.00\n"
		})

		It("should keep the trailing item with the unknown-name sentinel", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].Name).To(Equal(constants.UnknownName))
			Expect(rec.Items[0].PriceKnown).To(BeTrue())
			Expect(rec.Items[0].Price.StringFixed(2)).To(Equal("1.00"))
		})
	})

	When("a metadata line arrives while an AEON name is pending", func() {
		BeforeEach(func() {
			input = "AEON\n" +
				"1x 333 4.50\n" +
				"Sub-total 4.50\n"
		})

		It("should not swallow the metadata line as the item name", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].Name).To(Equal(constants.UnknownName))
			Expect(rec.Totals.Subtotal.StringFixed(2)).To(Equal("4.50"))
		})
	})

	When("parsing a LOTUS receipt with inline prices", func() {
		BeforeEach(func() {
			input = "LOTUS'S STORES MALAYSIA\n" +
				"09555663103205 LOTUSS TAT PAK CHOY 3.20\n" +
				"TOTAL 49.62\n" +
				"28/08/2023 19:23\n"
		})

		It("should classify the merchant", func() {
			Expect(rec.Merchant).To(Equal(constants.MerchantLOTUS))
		})

		It("should resolve the item from a single line", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].Code).To(Equal("09555663103205"))
			Expect(rec.Items[0].Name).To(Equal("LOTUSS TAT PAK CHOY"))
			Expect(rec.Items[0].PriceKnown).To(BeTrue())
			Expect(rec.Items[0].Price.StringFixed(2)).To(Equal("3.20"))
		})

		It("should extract the total and date/time", func() {
			Expect(rec.Totals.Total.StringFixed(2)).To(Equal("49.62"))
			Expect(rec.Date).To(Equal("28/08/2023"))
			Expect(rec.Time).To(Equal("19:23"))
		})
	})

	When("a LOTUS item price arrives on a later REDUCED PRICE line", func() {
		BeforeEach(func() {
			input = "LOTUS\n" +
				"09555663103205 LOTUSS TAT PAK CHOY\n" +
				"REDUCED PRICE 2.50\n"
		})

		It("should attach the deferred price to the pending item", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].Name).To(Equal("LOTUSS TAT PAK CHOY"))
			Expect(rec.Items[0].PriceKnown).To(BeTrue())
			Expect(rec.Items[0].Price.StringFixed(2)).To(Equal("2.50"))
		})
	})

	When("a total line is interleaved before a pending LOTUS price resolves", func() {
		BeforeEach(func() {
			input = "LOTUS\n" +
				"123 MILK\n" +
				"TOTAL 49.62\n" +
				"2.50\n"
		})

		It("should not consume the total line as the item price", func() {
			Expect(rec.Totals.Total.StringFixed(2)).To(Equal("49.62"))
		})

		It("should still resolve the item from the bare price line", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].PriceKnown).To(BeTrue())
			Expect(rec.Items[0].Price.StringFixed(2)).To(Equal("2.50"))
		})
	})

	When("the input ends with a LOTUS item still waiting for its price", func() {
		BeforeEach(func() {
			input = "LOTUS\n123 ITEM NAME\n"
		})

		It("should keep the trailing item with the unknown-price sentinel", func() {
			Expect(rec.Items).To(HaveLen(1))
			Expect(rec.Items[0].Name).To(Equal("ITEM NAME"))
			Expect(rec.Items[0].PriceKnown).To(BeFalse())
			Expect(rec.Items[0].PriceLabel()).To(Equal(constants.UnknownPrice))
		})
	})

	When("parsing a receipt from an unrecognized merchant", func() {
		BeforeEach(func() {
			input = "SOME CORNER SHOP\n" +
				"TOTAL 12.34\n" +
				"01/01/2024 09:00\n"
		})

		It("should fall back to the unknown merchant label", func() {
			Expect(rec.Merchant).To(Equal(constants.MerchantUnknown))
		})

		It("should extract no items but still extract metadata", func() {
			Expect(rec.Items).To(BeEmpty())
			Expect(rec.Totals.Total.StringFixed(2)).To(Equal("12.34"))
			Expect(rec.Date).To(Equal("01/01/2024"))
			Expect(rec.Time).To(Equal("09:00"))
		})
	})

	When("parsing empty input", func() {
		BeforeEach(func() {
			input = ""
		})

		It("should return a structurally valid record with sentinels", func() {
			Expect(rec.Merchant).To(Equal(constants.MerchantUnknown))
			Expect(rec.Items).To(BeEmpty())
			Expect(rec.Date).To(Equal(constants.UnknownField))
			Expect(rec.Time).To(Equal(constants.UnknownField))
			Expect(rec.Totals.Total.IsZero()).To(BeTrue())
		})
	})

	When("parsing the same input twice", func() {
		BeforeEach(func() {
			input = "AEON\n" +
				"2x 1234567890123 5.00\n" +
				"Fresh Apple\n" +
				"1x 42 1.10\n" +
				"Bread\n" +
				"Total After Adj INCL SVC TAX 6.10\n"
		})

		It("should produce identical records", func() {
			Expect(parser.Parse(input)).To(Equal(rec))
		})

		It("should keep items in source order", func() {
			Expect(rec.Items).To(HaveLen(2))
			Expect(rec.Items[0].Name).To(Equal("Fresh Apple"))
			Expect(rec.Items[1].Name).To(Equal("Bread"))
		})
	})
})
