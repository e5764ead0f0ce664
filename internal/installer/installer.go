// Package installer puts voice models and the sherpa-onnx engine on disk.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bibo-tts/bibo/internal/catalog"
	"github.com/bibo-tts/bibo/internal/download"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/charmbracelet/log"
)

// Fetcher downloads the first reachable source into dest.
type Fetcher interface {
	Fetch(ctx context.Context, label string, sources []string, dest string) error
}

// Options configure an Installer.
type Options struct {
	Quiet     bool
	Mirror    string
	UserAgent string
	// Out receives status lines, os.Stdout when nil.
	Out io.Writer

	// Fetcher and Extractor default to the download package.
	Fetcher   Fetcher
	Extractor download.Extractor

	// GOOS and GOARCH select the engine build, runtime values when empty.
	GOOS   string
	GOARCH string
}

// Installer installs voices from one catalog.
type Installer struct {
	cat       *catalog.Catalog
	fetcher   Fetcher
	extractor download.Extractor
	out       io.Writer
	quiet     bool
	mirror    string
	goos      string
	goarch    string
}

// New returns an Installer for cat.
func New(cat *catalog.Catalog, opts Options) *Installer {
	i := &Installer{
		cat:       cat,
		fetcher:   opts.Fetcher,
		extractor: opts.Extractor,
		out:       opts.Out,
		quiet:     opts.Quiet,
		mirror:    opts.Mirror,
		goos:      opts.GOOS,
		goarch:    opts.GOARCH,
	}
	if i.fetcher == nil {
		i.fetcher = download.New(download.Options{
			Quiet:     opts.Quiet,
			UserAgent: opts.UserAgent,
		})
	}
	if i.extractor == nil {
		i.extractor = download.DefaultExtractor()
	}
	if i.out == nil {
		i.out = os.Stdout
	}
	if i.goos == "" {
		i.goos = runtime.GOOS
	}
	if i.goarch == "" {
		i.goarch = runtime.GOARCH
	}
	return i
}

func (i *Installer) printf(format string, args ...any) {
	if i.quiet {
		return
	}
	fmt.Fprintf(i.out, format, args...)
}

// InstallVoice makes sure every file of voice id is on disk. An installed
// voice is left untouched.
func (i *Installer) InstallVoice(ctx context.Context, id string) error {
	v, err := i.cat.Lookup(id)
	if err != nil {
		return err
	}

	modelsDir := i.cat.Layout().ModelsDir()
	if err := os.MkdirAll(modelsDir, 0o755); err != nil {
		return tts.Other("Failed to create models dir", err)
	}

	if i.cat.VoiceInstalled(v) {
		i.printf("%s %s (%s) already installed\n", okMark, v.Name, v.Lang)
		return nil
	}

	unlock, err := download.Lock(ctx, filepath.Join(modelsDir, v.ID+".lock"))
	if err != nil {
		return tts.Other("Failed to lock voice", err)
	}
	defer unlock()

	// Another process may have finished while we waited.
	if i.cat.VoiceInstalled(v) {
		i.printf("%s %s (%s) already installed\n", okMark, v.Name, v.Lang)
		return nil
	}

	i.printf("\n%s Downloading: %s (%s, %c, %s, ~%dMB)\n",
		accent.Render("📥"), v.Name, v.Lang, v.Gender, v.Quality, v.SizeMB)
	log.Info("Installing voice", "voice", v.ID, "backend", v.Backend())

	switch v.Backend() {
	case catalog.BackendPiper:
		err = i.installPiper(ctx, v, modelsDir)
	default:
		err = i.installSherpa(ctx, v, modelsDir)
	}
	if err != nil {
		return err
	}

	i.printf("%s %s installed successfully!\n", okMark, v.Name)
	return nil
}

func (i *Installer) installPiper(ctx context.Context, v catalog.Voice, modelsDir string) error {
	i.printf("   Source: huggingface\n")

	modelPath := filepath.Join(modelsDir, v.ModelFilename())
	configPath := filepath.Join(modelsDir, v.ConfigFilename())

	if err := i.fetcher.Fetch(ctx, v.ModelFilename(), piperSources(v, ".onnx", i.mirror), modelPath); err != nil {
		return tts.DownloadFailed(fmt.Sprintf("%s model", v.ID), err)
	}
	if err := i.fetcher.Fetch(ctx, v.ConfigFilename(), piperSources(v, ".onnx.json", i.mirror), configPath); err != nil {
		// A model without its config would be listed as installed.
		removeBestEffort(modelPath)
		return tts.DownloadFailed(fmt.Sprintf("%s config", v.ID), err)
	}
	return nil
}

func (i *Installer) installSherpa(ctx context.Context, v catalog.Voice, modelsDir string) error {
	i.printf("   Source: sherpa-onnx\n")

	archive := filepath.Join(modelsDir, v.ArchiveFilename())
	defer removeBestEffort(archive)

	if err := i.fetcher.Fetch(ctx, v.ArchiveFilename(), archiveSources(v.ArchiveURL, i.mirror), archive); err != nil {
		return tts.DownloadFailed(v.ID, err)
	}

	staging := filepath.Join(modelsDir, ".staging-"+v.ID)
	removeBestEffort(staging)
	defer removeBestEffort(staging)

	i.printf("   %s Extracting...\n", accent.Render("📂"))
	if err := i.extractor.Extract(ctx, archive, staging); err != nil {
		return tts.Other("tar extraction failed", err)
	}

	staged := filepath.Join(staging, v.ModelDir)
	if _, err := os.Stat(v.ModelPath(staging)); err != nil {
		return tts.DownloadFailed(fmt.Sprintf("Model file not found after extraction: %s", v.Name), nil)
	}
	for _, p := range v.RequiredPaths(staging) {
		if _, err := os.Stat(p); err != nil {
			return tts.DownloadFailed(fmt.Sprintf("%s: archive is missing %s", v.Name, filepath.Base(p)), nil)
		}
	}

	target := v.Dir(modelsDir)
	if err := os.RemoveAll(target); err != nil {
		return tts.Other("Failed to replace incomplete voice directory", err)
	}
	if err := os.Rename(staged, target); err != nil {
		return tts.Other("Failed to move voice into place", err)
	}
	return nil
}

func removeBestEffort(path string) {
	if err := os.RemoveAll(path); err != nil {
		log.Debug("Cleanup failed", "path", path, "error", err)
	}
}
