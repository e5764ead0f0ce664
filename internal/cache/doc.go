// Package cache stores synthesized WAV audio on disk, compressed with zstd,
// so repeating the same text with the same voice and speed skips the
// external engine.
package cache
