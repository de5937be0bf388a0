package engine

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ValidateRecordJSON", func() {
	When("validating a freshly parsed record", func() {
		It("should pass for an itemized receipt", func() {
			rec := NewParser(nil).Parse("AEON\n2x 111 5.00\nFresh Apple\nTotal After Adj INCL SVC TAX 10.60\n01/02/2024 14:30")
			data, err := json.Marshal(rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(ValidateRecordJSON(data)).To(Succeed())
		})

		It("should pass for an empty parse with sentinels", func() {
			rec := NewParser(nil).Parse("")
			data, err := json.Marshal(rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(ValidateRecordJSON(data)).To(Succeed())
		})
	})

	When("the date is not DD/MM/YYYY or the sentinel", func() {
		It("should fail validation", func() {
			rec := NewParser(nil).Parse("")
			rec.Date = "2024-01-01"
			data, err := json.Marshal(rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(ValidateRecordJSON(data)).NotTo(Succeed())
		})
	})

	When("the payload has extra fields", func() {
		It("should fail validation", func() {
			Expect(ValidateRecordJSON([]byte(`{"merchant":"X","items":[],"totals":{"subtotal":"0","total":"0","tax":"0"},"date":"NULL","time":"NULL","extra":1}`))).NotTo(Succeed())
		})
	})
})
