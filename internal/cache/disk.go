package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

const entryExt = ".wav.zst"

// ErrItemTooLarge is returned by Put when a single entry exceeds the cache
// capacity.
var ErrItemTooLarge = errors.New("item too large for cache")

// Stats counts cache activity for the current process.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Disk is a size-bounded cache of WAV files. Entries live at
// <dir>/<key[:2]>/<key>.wav.zst and are evicted least recently used first,
// using the file modification time as the access time.
type Disk struct {
	dir      string
	capacity int64

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	mu    sync.Mutex
	stats Stats
}

// NewDisk opens (and creates) a cache rooted at dir holding at most
// capacity compressed bytes.
func NewDisk(dir string, capacity int64) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Disk{
		dir:      dir,
		capacity: capacity,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

// Key derives the entry key for one synthesis request.
func Key(engine, voice string, lengthScale float64, text string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%.2f|%s", engine, voice, lengthScale, text)))
	return hex.EncodeToString(hash[:])
}

// Dir returns the cache root.
func (d *Disk) Dir() string { return d.dir }

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key[:2], key+entryExt)
}

// Get returns the decompressed entry for key.
func (d *Disk) Get(key string) ([]byte, bool) {
	if len(key) < 2 {
		return nil, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	path := d.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		d.stats.Misses++
		return nil, false
	}

	decompressed, err := d.decoder.DecodeAll(data, nil)
	if err != nil {
		// Corrupted entry.
		_ = os.Remove(path)
		d.stats.Misses++
		return nil, false
	}

	now := time.Now()
	_ = os.Chtimes(path, now, now)
	d.stats.Hits++
	return decompressed, true
}

// Put stores value under key and evicts old entries if the cache grew past
// its capacity.
func (d *Disk) Put(key string, value []byte) error {
	if len(key) < 2 {
		return fmt.Errorf("invalid cache key %q", key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	compressed := d.encoder.EncodeAll(value, nil)
	if int64(len(compressed)) > d.capacity {
		return ErrItemTooLarge
	}

	path := d.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := writeFile(path, compressed); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return d.evict(path)
}

// Delete removes the entry for key.
func (d *Disk) Delete(key string) error {
	if len(key) < 2 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err := os.Remove(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every entry.
func (d *Disk) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := d.entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Remove(e.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Size returns the compressed size of all entries in bytes.
func (d *Disk) Size() (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := d.entries()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		total += e.size
	}
	return total, nil
}

// Stats returns hit, miss and eviction counts.
func (d *Disk) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Close releases the encoder and decoder.
func (d *Disk) Close() error {
	d.decoder.Close()
	return d.encoder.Close()
}

type entry struct {
	path    string
	size    int64
	modTime time.Time
}

func (d *Disk) entries() ([]entry, error) {
	var out []entry
	err := filepath.WalkDir(d.dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() || !strings.HasSuffix(path, entryExt) {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return nil
		}
		out = append(out, entry{path: path, size: info.Size(), modTime: info.ModTime()})
		return nil
	})
	return out, err
}

// evict removes least recently used entries until the cache fits. keep is
// never removed.
func (d *Disk) evict(keep string) error {
	entries, err := d.entries()
	if err != nil {
		return err
	}

	var total int64
	for _, e := range entries {
		total += e.size
	}
	if total <= d.capacity {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.Before(entries[j].modTime)
	})
	for _, e := range entries {
		if total <= d.capacity {
			break
		}
		if e.path == keep {
			continue
		}
		if err := os.Remove(e.path); err != nil {
			continue
		}
		total -= e.size
		d.stats.Evictions++
	}
	return nil
}

func writeFile(path string, data []byte) error {
	// Write to temp file first, then rename.
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	closeErr := file.Close()

	if err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	if closeErr != nil {
		_ = os.Remove(tempPath)
		return closeErr
	}

	return os.Rename(tempPath, path)
}
