// Package audio decodes WAV files and plays PCM audio through oto/v3.
//
// Playback blocks until the clip has finished or the context is cancelled.
// Builds with the nocgo tag have no audio output.
package audio
