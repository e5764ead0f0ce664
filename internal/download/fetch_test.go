package download_test

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"

	. "github.com/bibo-tts/bibo/internal/download"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

var _ = Describe("Fetch", func() {
	var (
		dir     string
		dest    string
		fetcher *Fetcher
		payload []byte
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		dest = filepath.Join(dir, "models", "voice.onnx")
		fetcher = New(Options{Quiet: true, UserAgent: "bibo/test"})

		payload = make([]byte, 20000)
		_, err := rand.Read(payload)
		Expect(err).ToNot(HaveOccurred())
	})

	It("downloads from the first working source", func() {
		var userAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent = r.Header.Get("User-Agent")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		err := fetcher.Fetch(context.Background(), "voice", []string{server.URL}, dest)
		Expect(err).ToNot(HaveOccurred())
		Expect(userAgent).To(Equal("bibo/test"))

		got, err := os.ReadFile(dest)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(payload))
		Expect(dest + ".partial").ToNot(BeAnExistingFile())
	})

	It("falls back to the next mirror on a non-2xx status", func() {
		var hits []string
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, "broken")
			http.NotFound(w, r)
		}))
		defer broken.Close()
		mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, "mirror")
			_, _ = w.Write(payload)
		}))
		defer mirror.Close()

		err := fetcher.Fetch(context.Background(), "voice", []string{broken.URL, mirror.URL}, dest)
		Expect(err).ToNot(HaveOccurred())
		Expect(hits).To(Equal([]string{"broken", "mirror"}))
		Expect(dest).To(BeAnExistingFile())
	})

	It("falls back on a truncated stream and removes the partial file", func() {
		truncated := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Promise more bytes than are sent, then drop the connection.
			w.Header().Set("Content-Length", "40000")
			_, _ = w.Write(payload)
			if hj, ok := w.(http.Hijacker); ok {
				conn, _, _ := hj.Hijack()
				_ = conn.Close()
			}
		}))
		defer truncated.Close()

		err := fetcher.Fetch(context.Background(), "voice", []string{truncated.URL}, dest)
		Expect(err).To(HaveOccurred())
		Expect(dest).ToNot(BeAnExistingFile())
		Expect(dest + ".partial").ToNot(BeAnExistingFile())
	})

	It("reports every source when all fail", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		urls := []string{server.URL + "/a", server.URL + "/b"}
		err := fetcher.Fetch(context.Background(), "voice", urls, dest)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("/a"))
		Expect(err.Error()).To(ContainSubstring("/b"))

		var statusErr *StatusError
		Expect(errors.As(err, &statusErr)).To(BeTrue())
		Expect(statusErr.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(dest).ToNot(BeAnExistingFile())
	})

	It("replaces a stale partial file", func() {
		Expect(os.MkdirAll(filepath.Dir(dest), 0o755)).To(Succeed())
		Expect(os.WriteFile(dest+".partial", []byte("stale"), 0o644)).To(Succeed())

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		Expect(fetcher.Fetch(context.Background(), "voice", []string{server.URL}, dest)).To(Succeed())
		got, err := os.ReadFile(dest)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(payload))
	})

	It("rejects an empty source list", func() {
		Expect(fetcher.Fetch(context.Background(), "voice", nil, dest)).ToNot(Succeed())
	})

	It("stops when the context is cancelled", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := fetcher.Fetch(ctx, "voice", []string{server.URL, server.URL}, dest)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})

var _ = Describe("Fetch progress", func() {
	var (
		dest    string
		out     *gbytes.Buffer
		payload []byte
	)

	BeforeEach(func() {
		dest = filepath.Join(GinkgoT().TempDir(), "voice.onnx")
		out = gbytes.NewBuffer()
		payload = make([]byte, 20000)
		_, err := rand.Read(payload)
		Expect(err).ToNot(HaveOccurred())
	})

	sized := func() *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
			_, _ = w.Write(payload)
		}))
	}

	It("writes nothing in quiet mode", func() {
		server := sized()
		defer server.Close()

		fetcher := New(Options{Quiet: true, Progress: out})
		Expect(fetcher.Fetch(context.Background(), "voice", []string{server.URL}, dest)).To(Succeed())
		Expect(out.Contents()).To(BeEmpty())
	})

	It("writes nothing when the size is unknown", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.(http.Flusher).Flush()
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		fetcher := New(Options{Progress: out})
		Expect(fetcher.Fetch(context.Background(), "voice", []string{server.URL}, dest)).To(Succeed())
		Expect(dest).To(BeAnExistingFile())
		Expect(out.Contents()).To(BeEmpty())
	})

	It("logs instead of drawing a bar when not on a terminal", func() {
		server := sized()
		defer server.Close()

		fetcher := New(Options{Progress: out})
		Expect(fetcher.Fetch(context.Background(), "voice", []string{server.URL}, dest)).To(Succeed())
		Expect(out).To(gbytes.Say("Downloading"))
		Expect(string(out.Contents())).To(ContainSubstring("file=voice"))
		Expect(string(out.Contents())).To(ContainSubstring("percent=100"))
		Expect(string(out.Contents())).ToNot(ContainSubstring("|"))
	})
})
