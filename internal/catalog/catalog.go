// Package catalog holds the compiled-in voice tables and answers which of
// them are installed under the user's data directory.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// Catalog is the voice table of one backend bound to a data directory.
type Catalog struct {
	backend Backend
	voices  []Voice
	layout  Layout
}

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case BackendSherpa, "":
		return BackendSherpa, nil
	case BackendPiper:
		return BackendPiper, nil
	default:
		return "", tts.ConfigError(fmt.Sprintf("unknown engine %q (valid: piper, sherpa)", name))
	}
}

// New returns the catalog for backend.
func New(backend Backend, layout Layout) (*Catalog, error) {
	c := &Catalog{backend: backend, layout: layout}
	switch backend {
	case BackendPiper:
		c.voices = PiperVoices
	case BackendSherpa:
		c.voices = SherpaVoices
	default:
		return nil, tts.ConfigError(fmt.Sprintf("unknown engine %q", backend))
	}
	return c, nil
}

// Backend returns the backend the catalog describes.
func (c *Catalog) Backend() Backend { return c.backend }

// Layout returns the directories the catalog checks.
func (c *Catalog) Layout() Layout { return c.layout }

// Voices returns the table in display order.
func (c *Catalog) Voices() []Voice { return c.voices }

// Len returns the number of voices.
func (c *Catalog) Len() int { return len(c.voices) }

// At returns the voice at the 1-based index i.
func (c *Catalog) At(i int) (Voice, bool) {
	if i < 1 || i > len(c.voices) {
		return Voice{}, false
	}
	return c.voices[i-1], true
}

// DefaultVoice is used when neither flag nor config names a voice.
func (c *Catalog) DefaultVoice() string {
	if c.backend == BackendSherpa {
		return "melo"
	}
	return "amy"
}

// Find matches id against the table, ignoring case. It never touches the
// filesystem.
func (c *Catalog) Find(id string) (Voice, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, v := range c.voices {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// Lookup is Find with a voice-not-found error carrying close matches.
func (c *Catalog) Lookup(id string) (Voice, error) {
	if v, ok := c.Find(id); ok {
		return v, nil
	}
	return Voice{}, tts.VoiceNotFound(id, c.suggest(id)...)
}

func (c *Catalog) suggest(id string) []string {
	ids := make([]string, len(c.voices))
	for i, v := range c.voices {
		ids[i] = v.ID
	}

	var out []string
	for _, m := range fuzzy.Find(strings.ToLower(id), ids) {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// IsInstalled reports whether id is known and every required file exists.
func (c *Catalog) IsInstalled(id string) bool {
	v, ok := c.Find(id)
	if !ok {
		return false
	}
	return c.VoiceInstalled(v)
}

// VoiceInstalled reports whether every required file of v exists.
func (c *Catalog) VoiceInstalled(v Voice) bool {
	for _, p := range v.RequiredPaths(c.layout.ModelsDir()) {
		if !exists(p) {
			return false
		}
	}
	return true
}

// Installed scans the models directory for recognizable model artifacts.
// Artifacts that belong to a catalog voice are reported by voice id, anything
// else by file stem (piper) or directory name (sherpa). A missing directory
// yields an empty list.
func (c *Catalog) Installed() []string {
	dir := c.layout.ModelsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		switch c.backend {
		case BackendPiper:
			if !e.IsDir() && strings.HasSuffix(name, ".onnx") {
				names = append(names, c.idFor(strings.TrimSuffix(name, ".onnx")))
			}
		case BackendSherpa:
			if e.IsDir() && hasModel(filepath.Join(dir, name)) {
				names = append(names, c.idFor(name))
			}
		}
	}
	return names
}

func hasModel(dir string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, "*.onnx"))
	return err == nil && len(matches) > 0
}

func (c *Catalog) idFor(artifact string) string {
	for _, v := range c.voices {
		if v.ModelDir == artifact || (v.HFPath != "" && v.baseName() == artifact) {
			return v.ID
		}
	}
	return artifact
}
