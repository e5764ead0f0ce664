package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibo-tts/bibo/internal/audio"
	"github.com/bibo-tts/bibo/internal/cache"
	"github.com/bibo-tts/bibo/internal/catalog"
	"github.com/bibo-tts/bibo/internal/installer"
	"github.com/bibo-tts/bibo/internal/text"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/bibo-tts/bibo/internal/tts/engines"
	"github.com/charmbracelet/log"
)

// app holds what one invocation needs.
type app struct {
	opts  options
	cat   *catalog.Catalog
	inst  *installer.Installer
	out   io.Writer
	stdin io.Reader
}

func newApp(opts options, out io.Writer) (*app, error) {
	cat, err := catalog.New(opts.backend, opts.layout)
	if err != nil {
		return nil, err
	}
	return &app{
		opts: opts,
		cat:  cat,
		inst: installer.New(cat, installer.Options{
			Quiet:     opts.quiet,
			Mirror:    opts.mirror,
			UserAgent: opts.userAgent(),
			Out:       out,
		}),
		out:   out,
		stdin: os.Stdin,
	}, nil
}

func (a *app) printf(format string, args ...any) {
	if a.opts.quiet {
		return
	}
	fmt.Fprintf(a.out, format, args...)
}

func run(ctx context.Context, opts options, args []string) error {
	a, err := newApp(opts, os.Stdout)
	if err != nil {
		return err
	}

	if opts.download != "" {
		n, err := a.inst.InstallBySpec(ctx, opts.download)
		log.Debug("Download finished", "spec", opts.download, "installed", n)
		return err
	}

	if opts.list {
		a.listInstalled()
		return nil
	}

	input, err := a.readText(args)
	if err != nil {
		return err
	}
	return a.speak(ctx, input)
}

// voice returns the requested voice or the backend default.
func (a *app) voice() string {
	if a.opts.voice != "" {
		return a.opts.voice
	}
	return a.cat.DefaultVoice()
}

// listInstalled prints the installed voices even in quiet mode.
func (a *app) listInstalled() {
	voices := a.cat.Installed()
	if len(voices) == 0 {
		fmt.Fprintf(a.out, "%s No voices installed\n", warning.Render("⚠️"))
		fmt.Fprintf(a.out, "%s Download: bibo -d list\n", accent.Render("📥"))
		return
	}

	current := strings.ToLower(a.voice())
	fmt.Fprintf(a.out, "%s\n", heading.Render("📢 Installed voices:"))
	for _, v := range voices {
		prefix := " "
		if strings.Contains(strings.ToLower(v), current) {
			prefix = success.Render("→")
		}
		fmt.Fprintf(a.out, "  %s %s\n", prefix, v)
	}
	fmt.Fprintf(a.out, "\n%s Download more: bibo -d list\n", warning.Render("💡"))
}

// readText takes text from the input file, the arguments or a piped stdin,
// in that order.
func (a *app) readText(args []string) (string, error) {
	if a.opts.input != "" {
		doc, err := text.ReadInput(a.opts.input)
		if err != nil {
			return "", err
		}
		a.printf("%s Reading: %s (%d chars)\n", accent.Render("📄"), doc.Name(), doc.RawLen)
		if doc.Markdown {
			a.printf("%s Cleaned: %d chars\n", accent.Render("📝"), len(doc.Text))
		}
		return doc.Text, nil
	}

	if len(args) > 0 {
		s := text.Normalize(strings.Join(args, " "))
		if strings.TrimSpace(s) == "" {
			return "", tts.NoTextProvided()
		}
		return s, nil
	}

	if piped, err := stdinIsPipe(a.stdin); err == nil && piped {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", tts.Other("unable to read from stdin", err)
		}
		if s := text.Normalize(string(b)); strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
	return "", tts.NoTextProvided()
}

func stdinIsPipe(r io.Reader) (bool, error) {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil, nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func (a *app) speak(ctx context.Context, input string) error {
	voice := a.voice()
	h, err := engines.Resolve(a.cat, voice)
	if err != nil {
		return err
	}

	engine, closeEngine, err := a.engine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine()

	speed := a.opts.effectiveSpeed()
	scale := speed.LengthScale()
	a.printf("%s %s @ %s\n", accent.Render("🎤"), voice, speed)

	if a.opts.output != "" {
		if dir := filepath.Dir(a.opts.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return tts.Other("Failed to create output directory", err)
			}
		}
		if err := engines.SynthesizeFile(ctx, engine, h, input, scale, a.opts.output); err != nil {
			return err
		}
		a.printf("%s Saved: %s\n", success.Render("✅"), a.opts.output)
		return nil
	}

	samples, err := engines.Synthesize(ctx, engine, h, input, scale)
	if err != nil {
		return err
	}
	a.printf("%s Playing...\n", accent.Render("▶️"))
	return audio.PlaySamples(ctx, samples)
}

// engine builds the configured backend, installing the sherpa-onnx binary
// on first use, and wraps it with the synthesis cache when enabled.
func (a *app) engine(ctx context.Context) (tts.Engine, func(), error) {
	noop := func() {}

	var e tts.Engine
	switch a.cat.Backend() {
	case catalog.BackendPiper:
		e = engines.NewPiper(engines.PiperConfig{Python: a.opts.python})
		tts.LogEngineSelection(e.Name(), "configured")
	default:
		bin, err := engines.FindSherpa(a.opts.env.SherpaPath, a.cat.Layout().EngineBinary())
		if err != nil {
			if tts.KindOf(err) != tts.KindEngineNotFound {
				return nil, noop, err
			}
			a.printf("%s sherpa-onnx engine not found, installing...\n", accent.Render("🔧"))
			if err := a.inst.InstallEngine(ctx); err != nil {
				return nil, noop, err
			}
			bin = a.cat.Layout().EngineBinary()
		}
		e = engines.NewSherpa(engines.SherpaConfig{Binary: bin, Threads: a.opts.threads})
		tts.LogEngineSelection(e.Name(), bin)
	}

	if !a.opts.cache {
		return e, noop, nil
	}
	disk, err := openCache(a.cat.Layout(), a.opts.cacheMaxMB)
	if err != nil {
		log.Warn("Synthesis cache disabled", "error", err)
		return e, noop, nil
	}
	closeCache := func() {
		s := disk.Stats()
		log.Debug("Synthesis cache", "hits", s.Hits, "misses", s.Misses, "evictions", s.Evictions)
		_ = disk.Close()
	}
	return engines.NewCached(e, disk), closeCache, nil
}

func openCache(layout catalog.Layout, maxMB int64) (*cache.Disk, error) {
	return cache.NewDisk(filepath.Join(layout.CacheDir, "audio"), maxMB<<20)
}
