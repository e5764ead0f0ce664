// Package main provides the entry point for the bibo CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	logCloser  = func() error { return nil }

	rootCmd = &cobra.Command{
		Use:   "bibo [TEXT]",
		Short: "Fast, local neural text-to-speech",
		Long: paragraph(
			fmt.Sprintf("\nSpeak text with local neural voices, %s.", keyword("no cloud required")),
		),
		Example: paragraph(strings.Join([]string{
			`bibo "Hello world"`,
			`bibo -v ryan -s slow "Good morning"`,
			`bibo -i README.md -o readme.wav`,
			`bibo -d list`,
		}, "\n")),
		SilenceErrors:    true,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return prepare()
		},
		RunE: execute,
	}
)

// envConfig is the environment that has no flag equivalent.
type envConfig struct {
	SherpaPath string `env:"BIBO_SHERPA_PATH"`
	DataHome   string `env:"BIBO_DATA_HOME"`
	ConfigHome string `env:"BIBO_CONFIG_HOME"`
}

// prepare wires colour and logging once flags and config are known.
func prepare() error {
	setupColor(os.Stdout)

	if configFile != "" && configFile != viper.ConfigFileUsed() {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil && !isNotFound(err) {
			return tts.ConfigError(fmt.Sprintf("unable to read %s: %v", configFile, err))
		}
	}

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	closer, err := setupLog(opts.layout.LogFile(), opts.debug)
	if err != nil {
		return tts.Other("Failed to open log file", err)
	}
	logCloser = closer

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func execute(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	return run(cmd.Context(), opts, args)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logCloser()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		renderError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	flags := rootCmd.Flags()
	if used := viper.ConfigFileUsed(); used != "" {
		configFile = used
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", configFile, "config file")
	rootCmd.PersistentFlags().StringP("engine", "e", "sherpa", "synthesis engine (sherpa/piper)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress status output")
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs to stderr")
	flags.StringP("voice", "v", "", "voice id (default melo for sherpa, amy for piper)")
	flags.StringP("speed", "s", "normal", "speech speed (slow/normal/fast)")
	flags.BoolP("fast", "f", false, "shortcut for --speed fast")
	flags.StringP("input", "i", "", "read text from a .md, .markdown or .txt file")
	flags.StringP("output", "o", "", "write a WAV file instead of playing")
	flags.BoolP("list", "l", false, "list installed voices")
	flags.StringP("download", "d", "", "download voices: list, all, 1,3,5 or a voice id")
	flags.Bool("no-cache", false, "skip the synthesis cache")

	// Config bindings
	_ = viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("voice", flags.Lookup("voice"))
	_ = viper.BindPFlag("speed", flags.Lookup("speed"))
	_ = viper.BindPFlag("fast", flags.Lookup("fast"))
	_ = viper.BindPFlag("input", flags.Lookup("input"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("list", flags.Lookup("list"))
	_ = viper.BindPFlag("download", flags.Lookup("download"))
	_ = viper.BindPFlag("no-cache", flags.Lookup("no-cache"))

	viper.SetDefault("engine", "sherpa")
	viper.SetDefault("speed", "normal")
	viper.SetDefault("mirror", "")
	viper.SetDefault("python", "")
	viper.SetDefault("threads", 2)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 200)

	rootCmd.AddCommand(configCmd, engineCmd, cacheCmd, manCmd)
}

func configDirs(cfg envConfig) ([]string, error) {
	dirs, err := gap.NewScope(gap.User, "bibo").ConfigDirs()
	if err != nil {
		return nil, err
	}
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "bibo")}, dirs...)
	}
	if cfg.ConfigHome != "" {
		dirs = append([]string{cfg.ConfigHome}, dirs...)
	}
	return dirs, nil
}

// envKeys maps config keys to the environment variables that may set them.
// Action flags such as --download or --output have no variable.
var envKeys = map[string]string{
	"voice":          "BIBO_VOICE",
	"speed":          "BIBO_SPEED",
	"engine":         "BIBO_ENGINE",
	"mirror":         "BIBO_MIRROR",
	"python":         "BIBO_PYTHON",
	"threads":        "BIBO_THREADS",
	"cache.enabled":  "BIBO_CACHE_ENABLED",
	"cache.max_size": "BIBO_CACHE_MAX_SIZE",
}

func bindEnv() {
	for key, name := range envKeys {
		_ = viper.BindEnv(key, name)
	}
}

func tryLoadConfigFromDefaultPlaces() {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		fmt.Println("Could not parse environment:", err)
		os.Exit(1)
	}

	dirs, err := configDirs(cfg)
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}
	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("bibo")
	viper.SetConfigType("yaml")
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "bibo.yml")
	}
}
