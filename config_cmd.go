package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
)

const defaultConfig = `# synthesis engine: sherpa (native) or piper (python)
engine: "sherpa"
# default voice, empty for the engine's default (melo / amy)
voice: ""
# speech speed: slow, normal or fast
speed: "normal"
# replace the download host, e.g. https://hf-mirror.com
mirror: ""
# python interpreter for the piper engine, e.g. "uv run python"
python: ""
# sherpa-onnx worker threads
threads: 2

# synthesized audio cache
cache:
  enabled: true
  # megabytes
  max_size: 200
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the bibo config file",
	Long:    paragraph(fmt.Sprintf("\n%s the bibo config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("bibo config\nbibo config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(configFile); err != nil {
			return err
		}

		c, err := editor.Cmd("bibo", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

// ensureConfigFile writes the default config to path unless a file is
// already there.
func ensureConfigFile(path string) error {
	if path == "" {
		return tts.ConfigError("no config file path")
	}
	if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
		return tts.ConfigError(fmt.Sprintf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml"))
	}

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("unable create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}
