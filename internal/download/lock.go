package download

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

// Lock takes an exclusive advisory lock on path, waiting until ctx is done.
// The returned func releases it.
func Lock(ctx context.Context, path string) (func(), error) {
	fileLock := flock.New(path)
	locked, err := fileLock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s", path)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			log.Debug("Failed to release lock", "path", path, "error", err)
		}
	}, nil
}
