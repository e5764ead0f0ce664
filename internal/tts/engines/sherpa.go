package engines

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/bibo-tts/bibo/internal/tts"
)

// SherpaBinary is the executable name of the sherpa-onnx TTS tool.
const SherpaBinary = "sherpa-onnx-offline-tts"

const defaultThreads = 2

var homebrewSherpaPaths = []string{
	"/opt/homebrew/opt/bibo/libexec/sherpa/bin/" + SherpaBinary,
	"/usr/local/opt/bibo/libexec/sherpa/bin/" + SherpaBinary,
}

// FindSherpa locates the engine binary. envPath (BIBO_SHERPA_PATH) wins,
// then the Homebrew bundle on macOS, then managed (the copy installed under
// the data directory), then PATH.
func FindSherpa(envPath, managed string) (string, error) {
	candidates := []string{envPath}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, homebrewSherpaPaths...)
	}
	candidates = append(candidates, managed)

	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	if p, err := exec.LookPath(SherpaBinary); err == nil {
		return p, nil
	}
	return "", tts.NewError(tts.KindEngineNotFound, SherpaBinary, nil)
}

// SherpaConfig configures the sherpa backend.
type SherpaConfig struct {
	// Binary is the resolved sherpa-onnx-offline-tts path.
	Binary  string
	Threads int
	Runner  Runner
	// GOOS selects the library path variable, runtime.GOOS when empty.
	GOOS string
}

// Sherpa synthesizes with the native sherpa-onnx executable.
type Sherpa struct {
	binary  string
	threads int
	runner  Runner
	goos    string
}

// NewSherpa returns the sherpa backend.
func NewSherpa(cfg SherpaConfig) *Sherpa {
	s := &Sherpa{
		binary:  cfg.Binary,
		threads: cfg.Threads,
		runner:  cfg.Runner,
		goos:    cfg.GOOS,
	}
	if s.threads <= 0 {
		s.threads = defaultThreads
	}
	if s.runner == nil {
		s.runner = ExecRunner{}
	}
	if s.goos == "" {
		s.goos = runtime.GOOS
	}
	return s
}

// Name implements tts.Engine.
func (s *Sherpa) Name() string { return "sherpa" }

// Command builds the engine invocation for one synthesis. The text is the
// final argument.
func (s *Sherpa) Command(h tts.Handle, text string, lengthScale float64, dest string) Command {
	args := []string{
		"--vits-model=" + h.ModelPath,
		"--vits-tokens=" + h.TokensPath,
	}
	if h.LexiconPath != "" {
		args = append(args, "--vits-lexicon="+h.LexiconPath)
	}
	if h.DictDir != "" {
		args = append(args, "--vits-dict-dir="+h.DictDir)
	}
	if h.DataDir != "" {
		args = append(args, "--vits-data-dir="+h.DataDir)
	}
	// A leading dash would be parsed as an option.
	if strings.HasPrefix(text, "-") {
		text = " " + text
	}
	args = append(args,
		"--vits-length-scale="+tts.FormatLengthScale(lengthScale),
		"--num-threads="+strconv.Itoa(s.threads),
		"--output-filename="+dest,
		text,
	)

	return Command{Path: s.binary, Args: args, Env: s.env()}
}

// env adds the bundle's lib directory to the dynamic loader path.
func (s *Sherpa) env() []string {
	libDir := filepath.Join(filepath.Dir(filepath.Dir(s.binary)), "lib")
	if _, err := os.Stat(libDir); err != nil {
		return nil
	}

	key := "LD_LIBRARY_PATH"
	if s.goos == "darwin" {
		key = "DYLD_LIBRARY_PATH"
	}
	return prependPathEnv(os.Environ(), key, libDir)
}

// SynthesizeToFile implements tts.Engine.
func (s *Sherpa) SynthesizeToFile(ctx context.Context, h tts.Handle, text string, lengthScale float64, dest string) error {
	if strings.TrimSpace(text) == "" {
		return tts.NoTextProvided()
	}
	if h.ModelPath == "" || h.TokensPath == "" {
		return tts.ConfigError("Tokens file missing for voice: " + h.VoiceID)
	}

	if err := s.runner.Run(ctx, s.Command(h, text, lengthScale, dest)); err != nil {
		return tts.SynthesisFailed("sherpa-onnx error", err)
	}
	if _, err := os.Stat(dest); err != nil {
		return tts.SynthesisFailed("sherpa-onnx produced no output", err)
	}
	return nil
}

func prependPathEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i := range env {
		if !strings.HasPrefix(env[i], prefix) {
			continue
		}
		current := strings.TrimPrefix(env[i], prefix)
		if pathListContains(current, value) {
			return env
		}
		if strings.TrimSpace(current) == "" {
			env[i] = prefix + value
		} else {
			env[i] = prefix + value + string(os.PathListSeparator) + current
		}
		return env
	}
	return append(env, prefix+value)
}

func pathListContains(pathList, value string) bool {
	value = filepath.Clean(value)
	for _, p := range filepath.SplitList(pathList) {
		if filepath.Clean(p) == value {
			return true
		}
	}
	return false
}
