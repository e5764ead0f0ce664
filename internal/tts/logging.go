package tts

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Metrics tracks one synthesis run.
type Metrics struct {
	Engine            string
	Voice             string
	TextLength        int
	SynthesisStart    time.Time
	SynthesisDuration time.Duration
	AudioBytes        int64
	CacheHit          bool
	ErrorMessage      string
}

// StartSynthesis starts tracking synthesis metrics
func StartSynthesis(engine, voice, text string) *Metrics {
	m := &Metrics{
		Engine:         engine,
		Voice:          voice,
		TextLength:     len(text),
		SynthesisStart: time.Now(),
	}
	log.Debug("Synthesis started",
		"engine", engine,
		"voice", voice,
		"textLength", m.TextLength)
	return m
}

// EndSynthesis completes tracking and logs the outcome.
func (m *Metrics) EndSynthesis(audioBytes int64, cacheHit bool, err error) {
	m.SynthesisDuration = time.Since(m.SynthesisStart)
	m.AudioBytes = audioBytes
	m.CacheHit = cacheHit

	if err != nil {
		m.ErrorMessage = err.Error()
		log.Error("Synthesis failed",
			"engine", m.Engine,
			"voice", m.Voice,
			"duration", m.SynthesisDuration,
			"error", m.ErrorMessage)
		return
	}

	log.Debug("Synthesis completed",
		"engine", m.Engine,
		"voice", m.Voice,
		"textLength", m.TextLength,
		"audioBytes", m.AudioBytes,
		"duration", m.SynthesisDuration,
		"cacheHit", m.CacheHit,
		"bytesPerSecond", calculateBytesPerSecond(m.AudioBytes, m.SynthesisDuration))
}

func calculateBytesPerSecond(bytes int64, duration time.Duration) string {
	if duration == 0 {
		return "N/A"
	}
	bps := float64(bytes) / duration.Seconds()
	return fmt.Sprintf("%.2f bytes/sec", bps)
}

// LogSubprocessExecution logs subprocess execution
func LogSubprocessExecution(command string, args []string, duration time.Duration, err error) {
	if err != nil {
		log.Debug("Subprocess failed",
			"command", command,
			"args", len(args),
			"duration", duration,
			"error", err)
		return
	}
	log.Debug("Subprocess executed",
		"command", command,
		"args", len(args),
		"duration", duration)
}

// LogEngineSelection logs engine selection
func LogEngineSelection(engine string, reason string) {
	log.Debug("TTS engine selected",
		"engine", engine,
		"reason", reason)
}
