package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrFolderBusy is returned when another process holds the folder lock.
var ErrFolderBusy = errors.New("archive folder is in use by another process")

const lockRetryDelay = 250 * time.Millisecond

// Lock is an exclusive cross-process lock on an archive folder. The lock file
// lives in the OS temp directory so the archive folder holds images only.
type Lock struct {
	fl *flock.Flock
}

// LockPath returns the lock file path for dir.
func LockPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(os.TempDir(), "face-compare-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for dir, retrying until timeout elapses.
func Acquire(ctx context.Context, dir string, timeout time.Duration) (*Lock, error) {
	fl := flock.New(LockPath(dir))

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrFolderBusy
		}
		return nil, fmt.Errorf("locking archive folder %s: %w", dir, err)
	}
	if !ok {
		return nil, ErrFolderBusy
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlocking archive folder: %w", err)
	}
	return nil
}
