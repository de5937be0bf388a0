package engine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evenlyhq/receiptlens/constants"
)

var _ = Describe("Classify", func() {
	When("a signature appears on the first line", func() {
		It("should pick the matching strategy", func() {
			tag, label := Classify([]string{"AEON BiG (M) SDN BHD", "TOTAL 1.00"})
			Expect(tag).To(Equal(constants.StrategyAEON))
			Expect(label).To(Equal(constants.MerchantAEON))
		})
	})

	When("the signature is buried mid-transcript", func() {
		It("should still find it", func() {
			tag, label := Classify([]string{"WELCOME", "Lotus's Stores", "TOTAL 1.00"})
			Expect(tag).To(Equal(constants.StrategyLOTUS))
			Expect(label).To(Equal(constants.MerchantLOTUS))
		})
	})

	When("no signature matches", func() {
		It("should fall back to the generic strategy", func() {
			tag, label := Classify([]string{"CORNER SHOP", "TOTAL 1.00"})
			Expect(tag).To(Equal(constants.StrategyGeneric))
			Expect(label).To(Equal(constants.MerchantUnknown))
		})
	})

	When("the input is empty", func() {
		It("should fall back to the generic strategy", func() {
			tag, _ := Classify(nil)
			Expect(tag).To(Equal(constants.StrategyGeneric))
		})
	})
})
