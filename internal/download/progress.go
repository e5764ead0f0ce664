package download

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

const logInterval = 2 * time.Second

type progress interface {
	io.Writer
	Finish()
}

// newProgress picks a progress sink. Nothing is reported in quiet mode or
// when the size is unknown. Terminals get a bar; anything else gets a
// log line on out at most every logInterval.
func newProgress(label string, total int64, out io.Writer, quiet bool) progress {
	if quiet || total <= 0 {
		return nopProgress{}
	}
	if !isTerminal(out) {
		return &logProgress{
			logger:  log.New(out),
			label:   label,
			total:   total,
			limiter: rate.NewLimiter(rate.Every(logInterval), 1),
		}
	}

	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(out, "\n") }),
	)
	return &barProgress{bar: bar}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopProgress struct{}

func (nopProgress) Write(p []byte) (int, error) { return len(p), nil }
func (nopProgress) Finish()                     {}

type barProgress struct {
	bar *progressbar.ProgressBar
}

func (b *barProgress) Write(p []byte) (int, error) { return b.bar.Write(p) }
func (b *barProgress) Finish()                     { _ = b.bar.Finish() }

type logProgress struct {
	logger  *log.Logger
	label   string
	total   int64
	written int64
	limiter *rate.Limiter
}

func (l *logProgress) Write(p []byte) (int, error) {
	l.written += int64(len(p))
	if l.limiter.Allow() {
		l.report()
	}
	return len(p), nil
}

func (l *logProgress) Finish() {
	l.report()
}

func (l *logProgress) report() {
	percentage := float64(l.written) / float64(l.total) * 100
	l.logger.Info("Downloading",
		"file", l.label,
		"received", humanize.Bytes(uint64(l.written)),
		"total", humanize.Bytes(uint64(l.total)),
		"percent", int(percentage))
}
