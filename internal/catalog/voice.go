package catalog

import (
	"path"
	"path/filepath"
)

// Backend names a synthesis engine family. Each backend has its own voice
// table and on-disk layout.
type Backend string

const (
	// BackendPiper runs the piper-tts Python package.
	BackendPiper Backend = "piper"
	// BackendSherpa runs the native sherpa-onnx executable.
	BackendSherpa Backend = "sherpa"
)

// Default output rates.
const (
	DefaultSampleRate = 22050
	MeloSampleRate    = 44100
)

// Voice describes a downloadable voice model.
type Voice struct {
	ID         string
	Name       string
	Lang       string
	Gender     rune
	Quality    string
	SizeMB     int
	SampleRate int

	// HFPath is the path of the model inside the piper-voices repository,
	// without extension. Set for piper voices only.
	HFPath string

	// Sherpa voices ship as a release archive that unpacks into ModelDir.
	ArchiveURL  string
	ModelDir    string
	ModelFile   string
	TokensFile  string
	LexiconFile string
	DictDir     string
	DataDir     string
}

// Backend reports which engine family the voice belongs to.
func (v Voice) Backend() Backend {
	if v.HFPath != "" {
		return BackendPiper
	}
	return BackendSherpa
}

func (v Voice) baseName() string {
	if v.HFPath == "" {
		return v.ID
	}
	return path.Base(v.HFPath)
}

// ModelFilename returns the model file name.
func (v Voice) ModelFilename() string {
	if v.Backend() == BackendSherpa {
		return v.ModelFile
	}
	return v.baseName() + ".onnx"
}

// ConfigFilename returns the piper config file name.
func (v Voice) ConfigFilename() string {
	return v.baseName() + ".onnx.json"
}

// ArchiveFilename returns the temporary archive name used during install.
func (v Voice) ArchiveFilename() string {
	return v.ModelDir + ".tar.bz2"
}

// Dir returns the per-voice directory for sherpa voices and the shared
// models directory for piper voices.
func (v Voice) Dir(modelsDir string) string {
	if v.Backend() == BackendSherpa {
		return filepath.Join(modelsDir, v.ModelDir)
	}
	return modelsDir
}

// ModelPath returns the decisive model file path.
func (v Voice) ModelPath(modelsDir string) string {
	return filepath.Join(v.Dir(modelsDir), v.ModelFilename())
}

// RequiredPaths lists every file or directory that must exist for the voice
// to count as installed. The model path comes first.
func (v Voice) RequiredPaths(modelsDir string) []string {
	dir := v.Dir(modelsDir)
	if v.Backend() == BackendPiper {
		return []string{
			filepath.Join(dir, v.ModelFilename()),
			filepath.Join(dir, v.ConfigFilename()),
		}
	}

	paths := []string{
		filepath.Join(dir, v.ModelFile),
		filepath.Join(dir, v.TokensFile),
	}
	for _, optional := range []string{v.LexiconFile, v.DictDir, v.DataDir} {
		if optional != "" {
			paths = append(paths, filepath.Join(dir, optional))
		}
	}
	return paths
}

// Rate returns the declared sample rate, falling back to the default.
func (v Voice) Rate() int {
	if v.SampleRate > 0 {
		return v.SampleRate
	}
	return DefaultSampleRate
}
