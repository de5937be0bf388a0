package engine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseAmount", func() {
	DescribeTable("accepted notations",
		func(in, want string) {
			v, err := ParseAmount(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.StringFixed(2)).To(Equal(want))
		},
		Entry("dot decimal", "12.34", "12.34"),
		Entry("comma decimal", "12,34", "12.34"),
		Entry("surrounding whitespace", " 5.00 ", "5.00"),
		Entry("dot thousands with comma decimal", "1.234,56", "1234.56"),
		Entry("space thousands", "1 234.56", "1234.56"),
		Entry("plain integer", "42", "42.00"),
	)

	When("the input is not a number", func() {
		It("should return an error", func() {
			_, err := ParseAmount("TOTAL")
			Expect(err).To(HaveOccurred())
		})
	})
})
