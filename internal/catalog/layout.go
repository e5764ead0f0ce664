package catalog

import (
	"os"
	"path/filepath"

	gap "github.com/muesli/go-app-paths"
)

// Layout is the per-user directory structure bibo reads and writes.
type Layout struct {
	DataDir  string
	CacheDir string
}

// DefaultLayout builds the layout from the platform's user data and cache
// directories. A non-empty dataHome overrides both.
func DefaultLayout(dataHome string) (Layout, error) {
	if dataHome != "" {
		return Layout{
			DataDir:  dataHome,
			CacheDir: filepath.Join(dataHome, "cache"),
		}, nil
	}

	scope := gap.NewScope(gap.User, "bibo")
	dirs, err := scope.DataDirs()
	if err != nil {
		return Layout{}, err
	}
	cacheDir, err := scope.CacheDir()
	if err != nil {
		return Layout{}, err
	}
	return Layout{DataDir: dirs[0], CacheDir: cacheDir}, nil
}

// ModelsDir holds one file pair (piper) or one directory (sherpa) per voice.
func (l Layout) ModelsDir() string {
	return filepath.Join(l.DataDir, "models")
}

// EngineDir holds the extracted sherpa-onnx bundle.
func (l Layout) EngineDir() string {
	return filepath.Join(l.DataDir, "sherpa")
}

// EngineBinary is the path the engine installer verifies.
func (l Layout) EngineBinary() string {
	return filepath.Join(l.EngineDir(), "bin", "sherpa-onnx-offline-tts")
}

// LogFile is where debug logs go when not writing to stderr.
func (l Layout) LogFile() string {
	return filepath.Join(l.DataDir, "bibo.log")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
