package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("downloadAttachment", func() {
	var (
		server *httptest.Server
		dir    string
	)

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "downloads")
	})

	AfterEach(func() {
		server.Close()
	})

	When("the attachment is served normally", func() {
		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("fake image bytes"))
			}))
		})

		It("should write it to a file under the download dir", func() {
			path, err := downloadAttachment(context.Background(), server.Client(), server.URL, dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Dir(path)).To(Equal(dir))
			Expect(filepath.Ext(path)).To(Equal(".png"))

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("fake image bytes"))
		})

		It("should pick a distinct filename per download", func() {
			first, err := downloadAttachment(context.Background(), server.Client(), server.URL, dir)
			Expect(err).NotTo(HaveOccurred())
			second, err := downloadAttachment(context.Background(), server.Client(), server.URL, dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).NotTo(Equal(second))
		})
	})

	When("the server responds with an error status", func() {
		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "gone", http.StatusNotFound)
			}))
		})

		It("should fail without leaving a file behind", func() {
			_, err := downloadAttachment(context.Background(), server.Client(), server.URL, dir)
			Expect(err).To(MatchError(ContainSubstring("unexpected status")))

			entries, readErr := os.ReadDir(dir)
			Expect(readErr).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})
