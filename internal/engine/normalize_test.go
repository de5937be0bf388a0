package engine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizeLines", func() {
	It("should trim and drop blank lines while preserving order", func() {
		lines := NormalizeLines("  AEON  \n\n   \n2x 111 2.00\r\nFresh Apple\n")
		Expect(lines).To(Equal([]string{"AEON", "2x 111 2.00", "Fresh Apple"}))
	})

	It("should return an empty slice for empty input", func() {
		Expect(NormalizeLines("")).To(BeEmpty())
		Expect(NormalizeLines("\n \n\t\n")).To(BeEmpty())
	})
})
