package engines

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bibo-tts/bibo/internal/tts"
)

// piperScript reads the text from stdin and the paths from argv.
const piperScript = `import sys
import wave
from piper.voice import PiperVoice
from piper.config import SynthesisConfig

model, config, scale, output = sys.argv[1:5]
text = sys.stdin.read()

voice = PiperVoice.load(model, config)
syn_config = SynthesisConfig(length_scale=float(scale))

with wave.open(output, "wb") as wav_file:
    voice.synthesize_wav(text, wav_file, syn_config=syn_config)
`

// PiperConfig configures the piper backend.
type PiperConfig struct {
	// Python overrides interpreter detection, e.g. "python3.11" or
	// "uv run python".
	Python string
	Runner Runner
}

// Piper synthesizes with the piper-tts Python package.
type Piper struct {
	python []string
	runner Runner
}

// NewPiper returns the piper backend. Without an explicit interpreter it
// prefers "uv run python" when uv is installed and python3 otherwise.
func NewPiper(cfg PiperConfig) *Piper {
	python := strings.Fields(cfg.Python)
	if len(python) == 0 {
		python = pythonCommand()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Piper{python: python, runner: runner}
}

func pythonCommand() []string {
	if _, err := exec.LookPath("uv"); err == nil {
		return []string{"uv", "run", "python"}
	}
	return []string{"python3"}
}

// Name implements tts.Engine.
func (p *Piper) Name() string { return "piper" }

// Command builds the interpreter invocation for one synthesis.
func (p *Piper) Command(h tts.Handle, text string, lengthScale float64, dest string) Command {
	args := append([]string{}, p.python[1:]...)
	args = append(args, "-c", piperScript,
		h.ModelPath,
		h.ConfigPath,
		tts.FormatLengthScale(lengthScale),
		dest,
	)
	return Command{Path: p.python[0], Args: args, Stdin: text}
}

// SynthesizeToFile implements tts.Engine.
func (p *Piper) SynthesizeToFile(ctx context.Context, h tts.Handle, text string, lengthScale float64, dest string) error {
	if strings.TrimSpace(text) == "" {
		return tts.NoTextProvided()
	}
	if h.ModelPath == "" || h.ConfigPath == "" {
		return tts.ConfigError("Config file missing for voice: " + h.VoiceID)
	}

	if err := p.runner.Run(ctx, p.Command(h, text, lengthScale, dest)); err != nil {
		return tts.SynthesisFailed("Python error", err)
	}
	return nil
}
