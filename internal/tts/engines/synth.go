package engines

import (
	"context"
	"os"

	"github.com/bibo-tts/bibo/internal/audio"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/charmbracelet/log"
)

// SynthesizeFile renders text to dest and logs the run.
func SynthesizeFile(ctx context.Context, e tts.Engine, h tts.Handle, text string, lengthScale float64, dest string) error {
	m := tts.StartSynthesis(e.Name(), h.VoiceID, text)
	err := e.SynthesizeToFile(ctx, h, text, lengthScale, dest)

	var size int64
	if err == nil {
		if info, statErr := os.Stat(dest); statErr == nil {
			size = info.Size()
		}
	}
	m.EndSynthesis(size, err == nil && lastHit(e), err)
	return err
}

// Synthesize renders text into a temporary WAV file and returns its
// samples. The temporary file is always removed.
func Synthesize(ctx context.Context, e tts.Engine, h tts.Handle, text string, lengthScale float64) (audio.Samples, error) {
	tmp, err := os.CreateTemp("", "bibo-*.wav")
	if err != nil {
		return audio.Samples{}, tts.Other("Failed to create temp file", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Debug("Failed to remove temp file", "path", path, "error", err)
		}
	}()

	if err := SynthesizeFile(ctx, e, h, text, lengthScale, path); err != nil {
		return audio.Samples{}, err
	}

	samples, err := audio.ReadWAVFile(path)
	if err != nil {
		return audio.Samples{}, tts.Other("Failed to read WAV", err)
	}
	if samples.SampleRate == 0 {
		samples.SampleRate = h.SampleRate
	}
	return samples, nil
}

func lastHit(e tts.Engine) bool {
	c, ok := e.(*Cached)
	return ok && c.LastHit()
}
