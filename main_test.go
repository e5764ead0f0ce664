package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bibo-tts/bibo/internal/catalog"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/spf13/viper"
)

func testApp(t *testing.T, backend catalog.Backend) (*app, *bytes.Buffer) {
	t.Helper()
	opts := options{
		backend: backend,
		layout:  catalog.Layout{DataDir: t.TempDir(), CacheDir: t.TempDir()},
	}
	var out bytes.Buffer
	a, err := newApp(opts, &out)
	if err != nil {
		t.Fatal(err)
	}
	a.stdin = strings.NewReader("")
	return a, &out
}

func TestReadTextFromArgs(t *testing.T) {
	a, _ := testApp(t, catalog.BackendSherpa)

	got, err := a.readText([]string{"Hello", "world"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello world" {
		t.Errorf("readText() = %q", got)
	}

	if _, err := a.readText([]string{"  ", "\t"}); !errors.Is(err, tts.ErrNoTextProvided) {
		t.Errorf("blank args error = %v", err)
	}
	if _, err := a.readText(nil); !errors.Is(err, tts.ErrNoTextProvided) {
		t.Errorf("no input error = %v", err)
	}
}

func TestReadTextFromStdin(t *testing.T) {
	a, _ := testApp(t, catalog.BackendSherpa)
	a.stdin = strings.NewReader("piped text\n")

	got, err := a.readText(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "piped text\n" {
		t.Errorf("readText() = %q", got)
	}
}

func TestReadTextFromFile(t *testing.T) {
	a, out := testApp(t, catalog.BackendSherpa)
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# Title\n\nSome **bold** text."), 0o644); err != nil {
		t.Fatal(err)
	}
	a.opts.input = path

	got, err := a.readText([]string{"ignored"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Title\n\nSome bold text." {
		t.Errorf("readText() = %q", got)
	}
	if !strings.Contains(out.String(), "Reading: notes.md") || !strings.Contains(out.String(), "Cleaned:") {
		t.Errorf("status output = %q", out.String())
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte(" \n\n "), 0o644); err != nil {
		t.Fatal(err)
	}
	a.opts.input = empty
	if _, err := a.readText(nil); !errors.Is(err, tts.ErrEmptyFile) {
		t.Errorf("empty file error = %v", err)
	}
}

func TestQuietKeepsListing(t *testing.T) {
	a, out := testApp(t, catalog.BackendPiper)
	a.opts.quiet = true

	models := a.cat.Layout().ModelsDir()
	if err := os.MkdirAll(models, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(models, "en_US-amy-medium.onnx"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	a.listInstalled()
	if !strings.Contains(out.String(), "amy") {
		t.Errorf("quiet listing = %q", out.String())
	}
}

func TestQuietSuppressesStatus(t *testing.T) {
	a, out := testApp(t, catalog.BackendSherpa)
	a.opts.quiet = true
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# Title"), 0o644); err != nil {
		t.Fatal(err)
	}
	a.opts.input = path

	if _, err := a.readText(nil); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("quiet output = %q", out.String())
	}
}

func TestListInstalled(t *testing.T) {
	a, out := testApp(t, catalog.BackendPiper)
	a.listInstalled()
	if !strings.Contains(out.String(), "No voices installed") {
		t.Errorf("output = %q", out.String())
	}

	models := a.cat.Layout().ModelsDir()
	if err := os.MkdirAll(models, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"en_US-amy-medium.onnx", "en_US-ryan-high.onnx"} {
		if err := os.WriteFile(filepath.Join(models, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	a.listInstalled()
	got := out.String()
	if !strings.Contains(got, "Installed voices") || !strings.Contains(got, "ryan") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "→ amy") {
		t.Errorf("default voice should be marked: %q", got)
	}
}

func TestSpeakUninstalledVoice(t *testing.T) {
	a, _ := testApp(t, catalog.BackendSherpa)

	err := a.speak(context.Background(), "hello")
	if !errors.Is(err, tts.ErrVoiceNotInstalled) {
		t.Fatalf("speak() error = %v, want not installed", err)
	}
	if _, err := os.Stat(a.cat.Layout().EngineDir()); !os.IsNotExist(err) {
		t.Error("engine must not be installed for a missing voice")
	}

	a.opts.voice = "nobody"
	if err := a.speak(context.Background(), "hello"); !errors.Is(err, tts.ErrVoiceNotFound) {
		t.Errorf("speak() error = %v, want not found", err)
	}
}

func TestRunListsCatalog(t *testing.T) {
	a, out := testApp(t, catalog.BackendPiper)
	n, err := a.inst.InstallBySpec(context.Background(), "LIST")
	if err != nil || n != 0 {
		t.Fatalf("InstallBySpec(list) = %d, %v", n, err)
	}
	if !strings.Contains(out.String(), "lessac") {
		t.Errorf("catalog output = %q", out.String())
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	renderError(&buf, tts.VoiceNotInstalled("ryan"))

	got := buf.String()
	for _, want := range []string{"❌", "Voice 'ryan' not installed", "How to fix", "bibo -d ryan"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}

	buf.Reset()
	renderError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("plain error output = %q", buf.String())
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIBO_DATA_HOME", dir)
	t.Setenv("BIBO_SHERPA_PATH", "~/bin/sherpa")

	viper.Set("engine", "piper")
	viper.Set("speed", "slow")
	viper.Set("fast", true)
	viper.Set("no-cache", true)
	t.Cleanup(func() {
		viper.Set("engine", "sherpa")
		viper.Set("speed", "normal")
		viper.Set("fast", false)
		viper.Set("no-cache", false)
	})

	opts, err := loadOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.backend != catalog.BackendPiper {
		t.Errorf("backend = %q", opts.backend)
	}
	if opts.layout.DataDir != dir {
		t.Errorf("data dir = %q", opts.layout.DataDir)
	}
	if opts.effectiveSpeed() != tts.SpeedFast {
		t.Errorf("fast flag should win over speed, got %v", opts.effectiveSpeed())
	}
	if opts.cache {
		t.Error("--no-cache should disable the cache")
	}
	if strings.HasPrefix(opts.env.SherpaPath, "~") {
		t.Errorf("sherpa path not expanded: %q", opts.env.SherpaPath)
	}
	if !strings.HasPrefix(opts.userAgent(), "bibo/") {
		t.Errorf("user agent = %q", opts.userAgent())
	}

	viper.Set("speed", "warp")
	if _, err := loadOptions(); !errors.Is(err, tts.ErrInvalidSpeed) {
		t.Errorf("invalid speed error = %v", err)
	}
	viper.Set("speed", "normal")
	viper.Set("engine", "espeak")
	if _, err := loadOptions(); !errors.Is(err, tts.ErrConfig) {
		t.Errorf("invalid engine error = %v", err)
	}
}

func TestSpeedFlagKeepsHints(t *testing.T) {
	t.Setenv("BIBO_DATA_HOME", t.TempDir())
	flag := rootCmd.Flags().Lookup("speed")
	t.Cleanup(func() {
		_ = flag.Value.Set("normal")
		flag.Changed = false
	})

	if err := rootCmd.ParseFlags([]string{"-s", "bogus"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	_, err := loadOptions()
	if !errors.Is(err, tts.ErrInvalidSpeed) {
		t.Fatalf("loadOptions() error = %v, want invalid speed", err)
	}

	var buf bytes.Buffer
	renderError(&buf, err)
	for _, want := range []string{"Invalid speed: bogus", "-s slow"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %q", want, buf.String())
		}
	}
}

func TestEnvBindings(t *testing.T) {
	t.Setenv("BIBO_VOICE", "ryan")
	t.Setenv("BIBO_CACHE_MAX_SIZE", "50")
	t.Setenv("BIBO_DOWNLOAD", "all")
	t.Setenv("BIBO_OUTPUT", "out.wav")
	t.Setenv("BIBO_INPUT", "notes.md")
	t.Setenv("BIBO_LIST", "true")

	if got := viper.GetString("voice"); got != "ryan" {
		t.Errorf("voice = %q, want ryan", got)
	}
	if got := viper.GetInt("cache.max_size"); got != 50 {
		t.Errorf("cache.max_size = %d, want 50", got)
	}
	for _, key := range []string{"download", "output", "input"} {
		if got := viper.GetString(key); got != "" {
			t.Errorf("%s picked up the environment: %q", key, got)
		}
	}
	if viper.GetBool("list") {
		t.Error("list picked up the environment")
	}
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bibo.yml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != defaultConfig {
		t.Error("default config not written")
	}

	if err := os.WriteFile(path, []byte("voice: ryan\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(path); string(b) != "voice: ryan\n" {
		t.Error("existing config must not be overwritten")
	}

	if err := ensureConfigFile(filepath.Join(t.TempDir(), "bibo.toml")); !errors.Is(err, tts.ErrConfig) {
		t.Errorf("unsupported extension error = %v", err)
	}
}

func TestDefaultConfigParses(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultConfig)); err != nil {
		t.Fatal(err)
	}
	if v.GetString("engine") != "sherpa" || !v.GetBool("cache.enabled") || v.GetInt("cache.max_size") != 200 {
		t.Errorf("unexpected defaults: %v", v.AllSettings())
	}
}

func TestManPage(t *testing.T) {
	page, err := manPage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page, "bibo") || !strings.Contains(page, "BIBO_MIRROR") {
		t.Error("man page is missing the command or environment section")
	}
}
