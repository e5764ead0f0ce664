//go:build nocgo
// +build nocgo

package audio

import (
	"context"

	"github.com/bibo-tts/bibo/internal/tts"
)

// Player is unavailable in nocgo builds.
type Player struct{}

// PlaySamples always fails in nocgo builds.
func PlaySamples(context.Context, Samples) error {
	return tts.PlaybackFailed("audio not available in nocgo build", nil)
}

// PlayFile always fails in nocgo builds.
func PlayFile(context.Context, string) error {
	return tts.PlaybackFailed("audio not available in nocgo build", nil)
}

// Play always fails in nocgo builds.
func (*Player) Play(context.Context, Samples) error {
	return tts.PlaybackFailed("audio not available in nocgo build", nil)
}
