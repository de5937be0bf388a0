package engine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("probeFields", func() {
	var b *builder

	BeforeEach(func() {
		b = newBuilder("test")
	})

	When("a line matches the adjusted-total phrasing", func() {
		It("should set the grand total", func() {
			probeFields(b, "Total After Adj INCL SVC TAX 10.60")
			Expect(b.totals.Total.StringFixed(2)).To(Equal("10.60"))
		})
	})

	When("a line matches the total-sales phrasing with words in between", func() {
		It("should set the grand total", func() {
			probeFields(b, "Total Sales Incl GST 49.62")
			Expect(b.totals.Total.StringFixed(2)).To(Equal("49.62"))
		})
	})

	When("a line says Sub-total", func() {
		It("should set the subtotal and leave the total alone", func() {
			probeFields(b, "Sub-total 10.00")
			Expect(b.totals.Subtotal.StringFixed(2)).To(Equal("10.00"))
			Expect(b.totals.Total.IsZero()).To(BeTrue())
		})
	})

	When("total lines repeat across the document", func() {
		It("should let the last match win", func() {
			probeFields(b, "TOTAL 10.00")
			probeFields(b, "Total After Adj INCL SVC TAX 10.60")
			Expect(b.totals.Total.StringFixed(2)).To(Equal("10.60"))
		})
	})

	When("a line carries a date and time", func() {
		It("should extract both, with or without a label", func() {
			probeFields(b, "DATE/TIME: 01/02/2024 14:30")
			Expect(b.date).To(Equal("01/02/2024"))
			Expect(b.time).To(Equal("14:30"))

			probeFields(b, "28/08/2023 19:23")
			Expect(b.date).To(Equal("28/08/2023"))
			Expect(b.time).To(Equal("19:23"))
		})
	})

	When("a line matches nothing", func() {
		It("should leave the builder untouched", func() {
			probeFields(b, "Thank you, come again")
			Expect(b.totals.Total.IsZero()).To(BeTrue())
			Expect(b.date).To(BeEmpty())
		})
	})
})

var _ = Describe("matchesFields", func() {
	It("should recognize metadata lines without applying them", func() {
		Expect(matchesFields("TOTAL 12.34")).To(BeTrue())
		Expect(matchesFields("Sub-total 1.00")).To(BeTrue())
		Expect(matchesFields("01/01/2024 09:00")).To(BeTrue())
		Expect(matchesFields("Fresh Apple")).To(BeFalse())
	})
})
