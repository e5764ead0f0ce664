// Package download fetches remote files with mirror fallback and unpacks
// release archives.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options configure a Fetcher.
type Options struct {
	// Quiet suppresses progress output.
	Quiet bool
	// UserAgent is sent with every request.
	UserAgent string
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// Progress receives the progress bar, os.Stderr when nil.
	Progress io.Writer
}

// Fetcher downloads files over HTTP.
type Fetcher struct {
	opts Options
}

// New returns a Fetcher.
func New(opts Options) *Fetcher {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Progress == nil {
		opts.Progress = os.Stderr
	}
	return &Fetcher{opts: opts}
}

// SourceError records why one source was abandoned.
type SourceError struct {
	URL string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetch tries each source in order and writes the first successful body to
// dest. Any transport error, non-2xx status or truncated stream moves on to
// the next source. When every source fails the returned error joins the
// per-source reasons.
func (f *Fetcher) Fetch(ctx context.Context, label string, sources []string, dest string) error {
	if len(sources) == 0 {
		return errors.New("no download sources")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %q: %w", dest, err)
	}

	var errs []error
	for _, url := range sources {
		err := f.fetchOne(ctx, label, url, dest)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug("Download source failed", "url", url, "error", err)
		errs = append(errs, &SourceError{URL: url, Err: err})
	}
	return errors.Join(errs...)
}

func (f *Fetcher) fetchOne(ctx context.Context, label, url, dest string) error {
	tmpFilePath := dest + ".partial"
	if err := removePartialFile(tmpFilePath); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	log.Debug("Downloading", "url", url, "dest", dest)
	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	outFile, err := os.Create(tmpFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", tmpFilePath, err)
	}

	progress := newProgress(label, resp.ContentLength, f.opts.Progress, f.opts.Quiet)
	_, err = io.Copy(io.MultiWriter(outFile, progress), resp.Body)
	progress.Finish()
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = removePartialFile(tmpFilePath)
		return fmt.Errorf("failed to write file %q: %w", dest, err)
	}

	if err := os.Rename(tmpFilePath, dest); err != nil {
		_ = removePartialFile(tmpFilePath)
		return fmt.Errorf("failed to rename temporary file %s -> %s: %w", tmpFilePath, dest, err)
	}
	return nil
}

func removePartialFile(tmpFilePath string) error {
	if _, err := os.Stat(tmpFilePath); err != nil {
		return nil
	}
	log.Debug("Removing temporary file", "path", tmpFilePath)
	if err := os.Remove(tmpFilePath); err != nil {
		err = fmt.Errorf("failed to remove temporary download file %s: %w", tmpFilePath, err)
		log.Warn(err.Error())
		return err
	}
	return nil
}
