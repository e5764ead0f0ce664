//go:build !nocgo
// +build !nocgo

package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

const (
	pollInterval = 10 * time.Millisecond
	// bufferSize is the device buffer length. oto reports a player as done
	// once its last bytes reach this buffer, not once they have been heard.
	bufferSize = 100 * time.Millisecond
)

// Player plays samples on the default output device. oto allows a single
// context per process, so the first clip fixes the device sample rate and
// channel count; later clips are resampled to it.
type Player struct {
	mu         sync.Mutex
	context    *oto.Context
	sampleRate int
	channels   int
}

var defaultPlayer = &Player{}

// PlaySamples plays s on the shared player.
func PlaySamples(ctx context.Context, s Samples) error {
	return defaultPlayer.Play(ctx, s)
}

// PlayFile decodes and plays the WAV file at path.
func PlayFile(ctx context.Context, path string) error {
	s, err := ReadWAVFile(path)
	if err != nil {
		return tts.PlaybackFailed("Failed to read WAV", err)
	}
	return PlaySamples(ctx, s)
}

func (p *Player) init(sampleRate, channels int) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.context != nil {
		return p.context, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	}
	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	p.context = otoCtx
	p.sampleRate = sampleRate
	p.channels = channels
	log.Debug("Audio context ready", "sampleRate", sampleRate, "channels", channels)
	return otoCtx, nil
}

// Play blocks until s has been played or ctx is cancelled.
func (p *Player) Play(ctx context.Context, s Samples) error {
	if len(s.Data) == 0 {
		return nil
	}
	if s.SampleRate <= 0 {
		return tts.PlaybackFailed("unknown sample rate", nil)
	}

	otoCtx, err := p.init(s.SampleRate, s.channels())
	if err != nil {
		return tts.PlaybackFailed("Failed to open audio device", err)
	}
	if s.channels() != p.channels {
		return tts.PlaybackFailed(fmt.Sprintf("cannot play %d channel audio on a %d channel device", s.channels(), p.channels), nil)
	}
	s = s.Resample(p.sampleRate)

	player := otoCtx.NewPlayer(bytes.NewReader(s.Bytes()))
	defer player.Close() //nolint:errcheck

	log.Debug("Playing audio", "duration", s.Duration())
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil {
		return tts.PlaybackFailed("Audio playback failed", err)
	}
	return drain(ctx, bufferSize)
}

// drain waits for d, the time the device needs to play out its buffer.
func drain(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
