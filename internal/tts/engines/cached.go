package engines

import (
	"bytes"
	"context"
	"os"

	"github.com/bibo-tts/bibo/internal/audio"
	"github.com/bibo-tts/bibo/internal/cache"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/charmbracelet/log"
)

// Cached serves repeated requests from a disk cache and stores every fresh
// synthesis in it. Entries that no longer decode as WAV are dropped and
// synthesized again. Cache failures are logged and otherwise ignored.
type Cached struct {
	engine  tts.Engine
	cache   *cache.Disk
	lastHit bool
}

// NewCached wraps engine with c.
func NewCached(engine tts.Engine, c *cache.Disk) *Cached {
	return &Cached{engine: engine, cache: c}
}

// Name implements tts.Engine.
func (c *Cached) Name() string { return c.engine.Name() }

// LastHit reports whether the previous call was served from the cache.
func (c *Cached) LastHit() bool { return c.lastHit }

// SynthesizeToFile implements tts.Engine.
func (c *Cached) SynthesizeToFile(ctx context.Context, h tts.Handle, text string, lengthScale float64, dest string) error {
	c.lastHit = false
	key := cache.Key(c.engine.Name(), h.VoiceID, lengthScale, text)

	if data, ok := c.cache.Get(key); ok {
		if _, err := audio.ReadWAV(bytes.NewReader(data)); err != nil {
			log.Debug("Dropping unreadable cached audio", "key", key[:12], "error", err)
			if err := c.cache.Delete(key); err != nil {
				log.Debug("Failed to delete cached audio", "error", err)
			}
		} else if err := os.WriteFile(dest, data, 0o644); err != nil {
			log.Debug("Failed to write cached audio", "dest", dest, "error", err)
		} else {
			log.Debug("Synthesis cache hit", "voice", h.VoiceID, "key", key[:12])
			c.lastHit = true
			return nil
		}
	}

	if err := c.engine.SynthesizeToFile(ctx, h, text, lengthScale, dest); err != nil {
		return err
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		log.Debug("Failed to read synthesized audio for caching", "error", err)
		return nil
	}
	if err := c.cache.Put(key, data); err != nil {
		log.Debug("Failed to cache synthesized audio", "error", err)
	}
	return nil
}
