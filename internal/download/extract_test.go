package download_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/bibo-tts/bibo/internal/download"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Extract", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("reports tar's stderr when extraction fails", func() {
		tarPath, err := exec.LookPath("tar")
		if err != nil {
			Skip("tar not available")
		}

		archive := filepath.Join(dir, "broken.tar.bz2")
		Expect(os.WriteFile(archive, []byte("not an archive"), 0o644)).To(Succeed())

		err = TarExtractor{Path: tarPath}.Extract(context.Background(), archive, filepath.Join(dir, "out"))
		Expect(err).To(HaveOccurred())

		var extractErr *ExtractError
		Expect(err).To(BeAssignableToTypeOf(extractErr))
		Expect(err.(*ExtractError).Stderr).ToNot(BeEmpty())
	})

	It("rejects files that are not archives", func() {
		archive := filepath.Join(dir, "voice.onnx")
		Expect(os.WriteFile(archive, []byte("x"), 0o644)).To(Succeed())

		Expect(ArchiverExtractor{}.Extract(context.Background(), archive, dir)).ToNot(Succeed())
	})

	It("picks an extractor", func() {
		Expect(DefaultExtractor()).ToNot(BeNil())
	})

	It("adapts plain functions", func() {
		var got string
		ex := ExtractFunc(func(_ context.Context, archive, _ string) error {
			got = archive
			return nil
		})
		Expect(ex.Extract(context.Background(), "a.tar.bz2", dir)).To(Succeed())
		Expect(got).To(Equal("a.tar.bz2"))
	})
})

var _ = Describe("Lock", func() {
	It("acquires and releases a lock file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "amy.lock")

		unlock, err := Lock(context.Background(), path)
		Expect(err).ToNot(HaveOccurred())
		Expect(path).To(BeAnExistingFile())
		unlock()

		unlock, err = Lock(context.Background(), path)
		Expect(err).ToNot(HaveOccurred())
		unlock()
	})
})
