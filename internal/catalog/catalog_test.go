package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/bibo-tts/bibo/internal/tts"
)

func newTestCatalog(t *testing.T, backend Backend) *Catalog {
	t.Helper()
	c, err := New(backend, Layout{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New(%s): %v", backend, err)
	}
	return c
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	c := newTestCatalog(t, BackendPiper)

	tests := []struct {
		id   string
		want string
		ok   bool
	}{
		{"amy", "amy", true},
		{"AMY", "amy", true},
		{" Ryan ", "ryan", true},
		{"bob", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v, ok := c.Find(tt.id)
			if ok != tt.ok || v.ID != tt.want {
				t.Errorf("Find(%q) = (%q, %v), want (%q, %v)", tt.id, v.ID, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLookupUnknownDoesNotTouchFilesystem(t *testing.T) {
	// The data directory does not exist; lookup must still answer.
	c, err := New(BackendSherpa, Layout{DataDir: filepath.Join(t.TempDir(), "missing")})
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Lookup("nonexistent")
	if !errors.Is(err, tts.ErrVoiceNotFound) {
		t.Fatalf("Lookup() error = %v, want voice not found", err)
	}
	if errors.Is(err, tts.ErrVoiceNotInstalled) {
		t.Error("unknown voice must not be reported as not installed")
	}
	if _, statErr := os.Stat(c.Layout().DataDir); !os.IsNotExist(statErr) {
		t.Error("lookup created the data directory")
	}
}

func TestLookupSuggestions(t *testing.T) {
	c := newTestCatalog(t, BackendPiper)

	_, err := c.Lookup("lesac")
	var e *tts.Error
	if !errors.As(err, &e) {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(e.Suggestions) == 0 || e.Suggestions[0] != "lessac" {
		t.Errorf("Suggestions = %v, want lessac first", e.Suggestions)
	}
}

func TestIsInstalledPiper(t *testing.T) {
	c := newTestCatalog(t, BackendPiper)
	v, _ := c.Find("amy")
	models := c.Layout().ModelsDir()

	if c.IsInstalled("amy") {
		t.Fatal("fresh data dir should have nothing installed")
	}

	touch(t, filepath.Join(models, "en_US-amy-medium.onnx"))
	if c.IsInstalled("amy") {
		t.Error("model without config must not count as installed")
	}

	touch(t, filepath.Join(models, v.ConfigFilename()))
	if !c.IsInstalled("amy") {
		t.Error("model and config present should count as installed")
	}
	if c.IsInstalled("nonexistent") {
		t.Error("unknown voice reported installed")
	}
}

func TestIsInstalledSherpa(t *testing.T) {
	c := newTestCatalog(t, BackendSherpa)
	v, _ := c.Find("melo")
	dir := v.Dir(c.Layout().ModelsDir())

	touch(t, filepath.Join(dir, "model.onnx"))
	touch(t, filepath.Join(dir, "tokens.txt"))
	touch(t, filepath.Join(dir, "lexicon.txt"))
	if c.IsInstalled("melo") {
		t.Error("missing dict dir must not count as installed")
	}

	if err := os.MkdirAll(filepath.Join(dir, "dict"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !c.IsInstalled("melo") {
		t.Error("all files present should count as installed")
	}
}

func TestInstalled(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		c := newTestCatalog(t, BackendPiper)
		if got := c.Installed(); len(got) != 0 {
			t.Errorf("Installed() = %v, want empty", got)
		}
	})

	t.Run("piper", func(t *testing.T) {
		c := newTestCatalog(t, BackendPiper)
		models := c.Layout().ModelsDir()
		touch(t, filepath.Join(models, "en_US-ryan-high.onnx"))
		touch(t, filepath.Join(models, "en_US-ryan-high.onnx.json"))
		touch(t, filepath.Join(models, "custom-voice.onnx"))
		touch(t, filepath.Join(models, "ryan.lock"))

		got := c.Installed()
		sort.Strings(got)
		want := []string{"custom-voice", "ryan"}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("Installed() = %v, want %v", got, want)
		}
	})

	t.Run("sherpa", func(t *testing.T) {
		c := newTestCatalog(t, BackendSherpa)
		models := c.Layout().ModelsDir()
		touch(t, filepath.Join(models, "vits-melo-tts-zh_en", "model.onnx"))
		touch(t, filepath.Join(models, "empty-dir", "README"))
		touch(t, filepath.Join(models, ".staging-kss", "ko_KO-kss_low.onnx"))

		got := c.Installed()
		if len(got) != 1 || got[0] != "melo" {
			t.Errorf("Installed() = %v, want [melo]", got)
		}
	})
}

func TestAt(t *testing.T) {
	c := newTestCatalog(t, BackendPiper)

	if v, ok := c.At(1); !ok || v.ID != "amy" {
		t.Errorf("At(1) = %q, %v", v.ID, ok)
	}
	if _, ok := c.At(0); ok {
		t.Error("At(0) should be out of range")
	}
	if _, ok := c.At(c.Len() + 1); ok {
		t.Error("At(Len+1) should be out of range")
	}
}

func TestDefaultVoiceIsInCatalog(t *testing.T) {
	for _, b := range []Backend{BackendPiper, BackendSherpa} {
		c := newTestCatalog(t, b)
		if _, ok := c.Find(c.DefaultVoice()); !ok {
			t.Errorf("%s default voice %q is not in the catalog", b, c.DefaultVoice())
		}
	}
}

func TestVoiceTables(t *testing.T) {
	for name, voices := range map[string][]Voice{"piper": PiperVoices, "sherpa": SherpaVoices} {
		seen := map[string]bool{}
		for _, v := range voices {
			if seen[v.ID] {
				t.Errorf("%s: duplicate id %q", name, v.ID)
			}
			seen[v.ID] = true
			if v.ID != strings.ToLower(v.ID) {
				t.Errorf("%s: id %q is not lower case", name, v.ID)
			}
			if v.Gender != 'M' && v.Gender != 'F' {
				t.Errorf("%s: %s has gender %q", name, v.ID, v.Gender)
			}
		}
	}

	melo, _ := (&Catalog{voices: SherpaVoices}).Find("melo")
	if melo.Rate() != MeloSampleRate {
		t.Errorf("melo rate = %d", melo.Rate())
	}
}

func TestPiperFileNames(t *testing.T) {
	v := PiperVoices[0]
	if v.ModelFilename() != "en_US-amy-medium.onnx" {
		t.Errorf("ModelFilename() = %q", v.ModelFilename())
	}
	if v.ConfigFilename() != "en_US-amy-medium.onnx.json" {
		t.Errorf("ConfigFilename() = %q", v.ConfigFilename())
	}
	if v.Backend() != BackendPiper {
		t.Errorf("Backend() = %s", v.Backend())
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendSherpa, false},
		{"Sherpa", BackendSherpa, false},
		{"piper", BackendPiper, false},
		{"espeak", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, %v", tt.in, got, err)
		}
	}
}
