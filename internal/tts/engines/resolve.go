package engines

import (
	"os"
	"path/filepath"

	"github.com/bibo-tts/bibo/internal/catalog"
	"github.com/bibo-tts/bibo/internal/tts"
)

// Resolve turns a voice id into a handle on its installed files. It fails
// with voice-not-found for unknown ids, voice-not-installed when the model
// is absent and a config error when an auxiliary file is missing. Nothing is
// executed.
func Resolve(cat *catalog.Catalog, id string) (tts.Handle, error) {
	v, err := cat.Lookup(id)
	if err != nil {
		return tts.Handle{}, err
	}

	models := cat.Layout().ModelsDir()
	h := tts.Handle{
		VoiceID:    v.ID,
		ModelPath:  v.ModelPath(models),
		SampleRate: v.Rate(),
	}
	if !exists(h.ModelPath) {
		return tts.Handle{}, tts.VoiceNotInstalled(v.ID)
	}

	if v.Backend() == catalog.BackendPiper {
		h.ConfigPath = filepath.Join(models, v.ConfigFilename())
		if !exists(h.ConfigPath) {
			return tts.Handle{}, tts.ConfigError("Config file missing for voice: " + v.ID)
		}
		return h, nil
	}

	dir := v.Dir(models)
	h.TokensPath = filepath.Join(dir, v.TokensFile)
	if v.LexiconFile != "" {
		h.LexiconPath = filepath.Join(dir, v.LexiconFile)
	}
	if v.DictDir != "" {
		h.DictDir = filepath.Join(dir, v.DictDir)
	}
	if v.DataDir != "" {
		h.DataDir = filepath.Join(dir, v.DataDir)
	}
	for _, p := range []string{h.TokensPath, h.LexiconPath, h.DictDir, h.DataDir} {
		if p != "" && !exists(p) {
			return tts.Handle{}, tts.ConfigError(filepath.Base(p) + " missing for voice: " + v.ID)
		}
	}
	return h, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
