package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// setupLog sends debug logs to stderr when debug is set and to logFile
// otherwise. The returned func closes the log file.
func setupLog(logFile string, debug bool) (func() error, error) {
	log.SetOutput(io.Discard)
	log.SetLevel(log.DebugLevel)

	if debug {
		log.SetOutput(os.Stderr)
		log.SetReportTimestamp(true)
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f.Close, nil
}
