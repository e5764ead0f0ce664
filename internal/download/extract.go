package download

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mholt/archiver/v3"
)

// Extractor unpacks an archive into a directory.
type Extractor interface {
	Extract(ctx context.Context, archive, dest string) error
}

// ExtractFunc adapts a function to Extractor.
type ExtractFunc func(ctx context.Context, archive, dest string) error

// Extract calls f.
func (f ExtractFunc) Extract(ctx context.Context, archive, dest string) error {
	return f(ctx, archive, dest)
}

// DefaultExtractor uses the system tar when available and falls back to the
// pure Go archiver.
func DefaultExtractor() Extractor {
	if path, err := exec.LookPath("tar"); err == nil {
		return TarExtractor{Path: path}
	}
	return ArchiverExtractor{}
}

// ExtractError is returned when tar exits non-zero.
type ExtractError struct {
	Archive string
	Stderr  string
	Err     error
}

func (e *ExtractError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("failed to extract %s: %s", e.Archive, e.Stderr)
	}
	return fmt.Sprintf("failed to extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// TarExtractor runs tar -xjf.
type TarExtractor struct {
	Path string
}

// Extract implements Extractor.
func (t TarExtractor) Extract(ctx context.Context, archive, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Path, "-xjf", archive, "-C", dest)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ExtractError{
			Archive: archive,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return nil
}

// ArchiverExtractor unpacks with github.com/mholt/archiver. The format is
// chosen from the archive's extension.
type ArchiverExtractor struct{}

// Extract implements Extractor.
func (ArchiverExtractor) Extract(_ context.Context, archive, dest string) error {
	uaIface, err := archiver.ByExtension(archive)
	if err != nil {
		return err
	}

	un, ok := uaIface.(archiver.Unarchiver)
	if !ok {
		return fmt.Errorf("format specified by source filename is not an archive format: %s (%T)", archive, uaIface)
	}

	mytar := &archiver.Tar{
		OverwriteExisting:      true,
		MkdirAll:               true,
		ImplicitTopLevelFolder: false,
	}

	switch v := uaIface.(type) {
	case *archiver.Tar:
		un = mytar
	case *archiver.TarBz2:
		v.Tar = mytar
	case *archiver.TarGz:
		v.Tar = mytar
	case *archiver.TarXz:
		v.Tar = mytar
	case *archiver.TarZstd:
		v.Tar = mytar
	}

	if err := un.Unarchive(archive, dest); err != nil {
		return &ExtractError{Archive: archive, Err: err}
	}
	return nil
}
