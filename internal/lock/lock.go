// Package lock keeps two recompress runs from working the same directory at
// the same time. The lock file lives in the OS temp directory so the target
// directory is never polluted with non-asset files.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Acquire when another process holds the lock.
var ErrLocked = errors.New("another recompress run is already processing this directory")

// Dir is a held advisory lock on one target directory.
type Dir struct {
	fl *flock.Flock
}

// Path returns the lock file used for dir. dir should be absolute so that
// different spellings of the same directory share one lock.
func Path(dir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(dir)))
	return filepath.Join(os.TempDir(), "recompress-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for dir without blocking.
func Acquire(dir string) (*Dir, error) {
	fl := flock.New(Path(dir))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Dir{fl: fl}, nil
}

// Release unlocks the directory. The lock file stays in the temp directory:
// unlinking it would let a waiter hold the old inode while a newcomer locks
// a fresh file at the same path.
func (d *Dir) Release() error {
	if d == nil || d.fl == nil {
		return nil
	}
	if err := d.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock: %w", err)
	}
	return nil
}
