package engines

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bibo-tts/bibo/internal/tts"
)

// Command describes one child process.
type Command struct {
	Path  string
	Args  []string
	Stdin string
	// Env replaces the inherited environment when non-nil.
	Env []string
}

func (c Command) String() string {
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Runner starts a command and waits for it.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

// ProcessError is returned when a child exits non-zero or fails to start.
type ProcessError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec. There is no timeout; the child is
// killed when ctx is cancelled.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, c Command) error {
	start := time.Now()

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	// Stdin is set before the process starts.
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	if c.Env != nil {
		cmd.Env = c.Env
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	tts.LogSubprocessExecution(c.Path, c.Args, time.Since(start), err)

	if ctx.Err() != nil {
		return fmt.Errorf("subprocess cancelled: %w", ctx.Err())
	}
	if err != nil {
		return &ProcessError{
			Path:   c.Path,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
