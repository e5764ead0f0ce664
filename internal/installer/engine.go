package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bibo-tts/bibo/internal/download"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/charmbracelet/log"
)

// EngineInstalled reports whether the managed sherpa-onnx binary exists.
func (i *Installer) EngineInstalled() bool {
	_, err := os.Stat(i.cat.Layout().EngineBinary())
	return err == nil
}

// InstallEngine downloads the sherpa-onnx shared build for this platform into
// the engine directory.
func (i *Installer) InstallEngine(ctx context.Context) error {
	layout := i.cat.Layout()
	if i.EngineInstalled() {
		i.printf("%s Sherpa-onnx already installed\n", okMark)
		return nil
	}

	url, err := EngineURL(i.goos, i.goarch)
	if err != nil {
		return tts.Other("Unsupported platform", err)
	}

	if err := os.MkdirAll(layout.DataDir, 0o755); err != nil {
		return tts.Other("Failed to create data dir", err)
	}

	unlock, err := download.Lock(ctx, filepath.Join(layout.DataDir, "sherpa.lock"))
	if err != nil {
		return tts.Other("Failed to lock engine directory", err)
	}
	defer unlock()

	if i.EngineInstalled() {
		return nil
	}

	i.printf("%s Downloading sherpa-onnx TTS engine...\n", accent.Render("📦"))
	i.printf("   From: %s\n", url)
	log.Info("Installing engine", "url", url)

	archive := filepath.Join(layout.DataDir, "sherpa_temp.tar.bz2")
	defer removeBestEffort(archive)
	if err := i.fetcher.Fetch(ctx, "sherpa-onnx", archiveSources(url, i.mirror), archive); err != nil {
		return tts.DownloadFailed("sherpa-onnx", err)
	}

	staging := filepath.Join(layout.DataDir, ".staging-sherpa")
	removeBestEffort(staging)
	defer removeBestEffort(staging)

	i.printf("   %s Extracting...\n", accent.Render("📂"))
	if err := i.extractor.Extract(ctx, archive, staging); err != nil {
		return tts.Other("tar extraction failed", err)
	}

	root, err := singleTopLevelDir(staging)
	if err != nil {
		return tts.Other("Failed to read extracted archive", err)
	}
	if _, err := os.Stat(filepath.Join(root, "bin", "sherpa-onnx-offline-tts")); err != nil {
		return tts.Other("sherpa-onnx-offline-tts binary not found in extracted archive", nil)
	}
	if err := makeExecutable(filepath.Join(root, "bin")); err != nil {
		return tts.Other("Failed to make engine executable", err)
	}

	if err := os.RemoveAll(layout.EngineDir()); err != nil {
		return tts.Other("Failed to replace engine directory", err)
	}
	if err := os.Rename(root, layout.EngineDir()); err != nil {
		return tts.Other("Failed to move engine into place", err)
	}

	i.printf("%s Sherpa-onnx installed successfully!\n", okMark)
	return nil
}

// singleTopLevelDir returns the only directory inside dir, or dir itself when
// the archive was not wrapped in one.
func singleTopLevelDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

func makeExecutable(binDir string) error {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Chmod(filepath.Join(binDir, e.Name()), 0o755); err != nil {
			return fmt.Errorf("chmod %s: %w", e.Name(), err)
		}
	}
	return nil
}
